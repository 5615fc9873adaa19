// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package units centralises the unit conventions and physical constants
// shared by every analysis package: US customary units throughout, length
// in feet for soil-profile depths and inches for lateral/axial pile
// response, force in pounds, stress in psf/psi.
package units

// GammaWater is the unit weight of water (pcf), used for effective-stress
// reduction below the water table.
const GammaWater = 62.4

// AtmosphericPressure is 1 atm expressed as a stress (psf), used in the
// Liao-Whitman overburden correction C_N = min(sqrt(Pa/sigma'_v), 2.0).
const AtmosphericPressure = 2116.0

// SteelModulus is Young's modulus for structural steel (psi).
const SteelModulus = 29_000_000.0

// DefaultFy is the default steel yield strength (ksi) used when a section
// does not specify one explicitly.
const DefaultFy = 50.0

// YFloor is the smallest lateral or axial displacement (in) used to guard
// secant-stiffness division by zero.
const YFloor = 1e-6

// SigmaVFloor is the smallest effective stress (psf) used to guard the
// alpha-method c_u/sigma'_v ratio and the C_N division by zero.
const SigmaVFloor = 1.0

// FtToIn converts feet to inches.
func FtToIn(ft float64) float64 { return ft * 12.0 }

// InToFt converts inches to feet.
func InToFt(in float64) float64 { return in / 12.0 }

// PsfToPsi converts pounds per square foot to pounds per square inch.
func PsfToPsi(psf float64) float64 { return psf / 144.0 }

// PsiToPsf converts pounds per square inch to pounds per square foot.
func PsiToPsf(psi float64) float64 { return psi * 144.0 }

// PcfToPci converts a unit weight from pounds per cubic foot to pounds per
// cubic inch, used when a p-y ultimate-resistance formula is evaluated in
// consistent inch-based units with a depth given in feet.
func PcfToPci(pcf float64) float64 { return pcf / 1728.0 }
