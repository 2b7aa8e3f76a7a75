// Package fields reconstructs electromagnetic fields from the mode
// amplitudes of a layer stack.
//
// Amplitudes come in colocated forward and backward pairs. FromAmplitudes
// maps such a pair to the Fourier coefficients of all six field
// components inside the layer; OnGrid and OnCoordinates evaluate those
// coefficients in real space, including the Bloch phase of the in-plane
// wavevector.
//
// StackAmplitudesInterior resolves the amplitudes inside every layer of a
// stack from the amplitudes incident on its two ends, using the interior
// scattering matrices of scattering.StackMatricesInterior. The variant
// StackAmplitudesInteriorWithSource does the same for stacks excited by
// an embedded current source rather than external illumination.
//
// AmplitudePoyntingFlux resolves the time-average z-directed Poynting
// flux order by order and splits it into forward and backward parts, the
// form consumed by far-field projection and by power accounting across
// interfaces.
package fields
