// Package render composes time-parameterized visual layers onto a fixed
// vertical canvas and encodes the result, muxed with audio, through ffmpeg.
//
// Each visual effect implements the Layer interface: a pure function of
// time t producing a pixel buffer and a canvas position. A Timeline stacks
// layers in z-order (background first), and the Encoder streams composited
// frames to ffmpeg over stdin as raw RGBA. Evaluating a layer twice at the
// same t yields the same pixels, which keeps every effect unit-testable
// without encoding video.
package render
