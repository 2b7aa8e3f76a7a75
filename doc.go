// Package fmm is a Fourier modal method (rigorous coupled-wave analysis)
// solver for electromagnetic scattering in biperiodic layered media.
//
// 🚀 What is fmm?
//
//	A pure-Go frequency-domain solver that brings together:
//		• Basis construction: reciprocal lattices, circular & rectangular
//		  truncation of the Fourier expansion
//		• Layer eigensolves: isotropic and fully anisotropic media,
//		  patterned or uniform, per Whittaker & Culshaw and Liu & Fan
//		• Scattering matrices: numerically stable stack assembly,
//		  Redheffer star products, interior substack matrices
//		• Sources: plane waves, embedded dipoles and Gaussian beams
//		• Fields: amplitudes and all six field components anywhere in
//		  the stack, Poynting flux resolved per diffraction order
//		• Far fields: Brillouin-zone integration mapped to radiation
//		  patterns in angle space
//
// ✨ Why choose fmm?
//
//   - Semi-analytic – exact along z, spectral in the plane, no voxel grids
//   - Rock-solid conventions – one documented choice of time dependence,
//     amplitude referencing and branch cuts used everywhere
//   - Pure Go – gonum underneath, no cgo, no Fortran
//   - Composable – every stage returns plain values the next consumes
//
// Under the hood, everything is organized under eight subpackages:
//
//	basis/      — lattices, Fourier expansions, Brillouin-zone grids
//	cmat/       — dense complex matrices: multiply, solve, eigensolve
//	fourier/    — grid-to-coefficient transforms & convolution matrices
//	layer/      — per-layer eigenmodes for isotropic & anisotropic media
//	scattering/ — stack scattering matrices & star products
//	sources/    — dipole and Gaussian current sources, source injection
//	fields/     — amplitudes, field reconstruction, Poynting flux
//	farfield/   — angular radiation patterns from zone-resolved flux
//
// Quick sketch of a simulation:
//
//	lattice ──▶ expansion ──▶ layer eigensolves ──▶ scattering matrix
//	                                 │                     │
//	                                 ▼                     ▼
//	                         interior amplitudes ──▶ fields & flux
//
// All quantities use exp(-i omega t) time dependence with omega equal to
// 2 pi over the vacuum wavelength, and lengths share one arbitrary unit
// with the wavelength.
//
//	go get github.com/photonlattice/fmm
package fmm
