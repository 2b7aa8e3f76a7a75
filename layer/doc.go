// Package layer solves the per-layer eigenproblem of the Fourier modal
// method, following the formulation of Whittaker and Culshaw (1999) and its
// extension to anisotropic media by Liu and Fan (2012).
//
// For a layer that is uniform along z, Maxwell's equations in the truncated
// Fourier basis reduce to a quadratic eigenproblem for the transverse
// magnetic field. With N expansion orders the operator is 2N x 2N and each
// eigenpair describes one mode: an in-plane profile phi and a longitudinal
// wavenumber q, propagating as exp(iqz). Time dependence is exp(-i omega t)
// with omega = 2 pi / wavelength, so modes with Im q > 0 decay in +z.
//
// Two solvers are provided. SolveIsotropic handles scalar permittivity,
// with a closed-form fast path for laterally uniform layers whose
// eigenvector matrix is the identity. SolveAnisotropic handles full
// in-plane permittivity and permeability tensors. Both return a
// SolveResult carrying the eigenmodes together with the operator blocks
// needed downstream for scattering matrices and field reconstruction.
//
// The branch of each q is fixed so that Im q >= 0, with Re q > 0 breaking
// ties for purely real eigenvalues. This makes decaying and forward-
// propagating modes the "forward" set throughout the package tree.
package layer
