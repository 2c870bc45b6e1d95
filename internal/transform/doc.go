// Package transform implements the pixel kernels whose output is fed to the
// proving circuits as witness data.
//
// Every kernel reproduces the integer and fixed-point arithmetic of a
// specific circuit, including truncations and asymmetric rounding that a
// perceptual implementation would avoid. Two circuit families disagree on
// how some operations are computed, so those operations come in tagged
// variants that are selected explicitly and never derived from each other:
//
//	ResizeAlgorithm:    WeightedBilinear | RatioIndexed
//	BlurAlgorithm:      BorderExcludingAverage | ZeroPaddedConvolution
//	GrayscaleAlgorithm: WeightedThousandths | LumaFixed16
//
// Kernels never modify their input and always return a freshly allocated
// buffer. Output rows do not depend on each other, so the resize and blur
// kernels spread rows across goroutines.
//
// Kernel arithmetic never fails. The only errors returned are violated
// preconditions on the call itself (an impossible target size, a malformed
// convolution kernel).
package transform
