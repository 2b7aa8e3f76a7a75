// Package sources injects localized current sources into a layer stack.
//
// A source is described by the Fourier coefficients of its transverse and
// longitudinal current density on the expansion orders. DipoleSource and
// GaussianSource build these coefficients analytically for point dipoles
// and Gaussian-blurred dipoles.
//
// AmplitudesForSource places a current sheet at the plane between two
// scattering matrices and solves for the mode amplitudes it radiates.
// The two matrices must terminate in the layer containing the source: the
// "before" matrix ends at the source plane and the "after" matrix starts
// there, as produced by scattering.StackMatricesInterior with adjusted
// terminal thicknesses. The current sheet imposes jumps in the tangential
// fields, and the returned amplitudes satisfy those jumps together with
// the reflection conditions of both substacks.
package sources
