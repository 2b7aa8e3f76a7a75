// Package farfield projects Poynting fluxes resolved on Fourier orders
// into propagation angles in an ambient medium.
//
// Each combination of a Brillouin-zone wavevector and an expansion order
// defines one transverse wavevector k+G, and every propagating k+G maps
// to a unique direction in the ambient half space. Sweeping the zone
// therefore fills the angular domain continuously: the flux radiated by a
// source in each diffracted order becomes a sample of the far-field
// radiation pattern, weighted by the solid angle its wavevector cell
// subtends. Orders beyond the light cone are evanescent and carry no far
// field; their samples are marked with NaN and skipped by IntegratedFlux.
package farfield
