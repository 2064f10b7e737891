// Package notifications delivers pipeline events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured
// in config.toml and gracefully degrades to a no-op when notifications are
// disabled. Per-event toggles control which milestones are pushed so a
// busy queue does not flood the subscriber's phone.
package notifications
