// Package scattering assembles scattering matrices for stacks of layers,
// following section 5 of Whittaker and Culshaw (1999).
//
// A Matrix relates the forward and backward mode amplitudes on the two
// sides of a stack. Forward amplitudes are referenced at the start of a
// layer and backward amplitudes at its end, so that every phase factor
// exp(iqd) appearing in the recursion decays for evanescent modes and the
// assembly stays numerically stable for thick or strongly absorbing
// layers.
//
//	aEnd   = S11 aStart + S12 bEnd
//	bStart = S21 aStart + S22 bEnd
//
// Matrices for substacks ending or starting at every interior layer are
// available through StackMatricesInterior; these are the inputs for
// interior field reconstruction and for source injection inside a stack.
package scattering
