/*
 * doc.go, part of gochrom.
 *
 * Copyright 2021 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*
Package chrom provides facilities for analyzing ensembles of chromosomal 3D
structures produced by molecular dynamics simulations, as stored in the
Nucleome Data Bank formats: the ndb fixed-column text format and the cndb
per-frame container.

A trajectory is an ensemble of frames, each frame being one simulated
conformation of the full bead chain: an Nx3 set of cartesian coordinates,
one row per genomic locus. Load opens a trajectory (transparently converting
ndb files to cndb first), XYZ extracts a coordinate tensor for a selection of
frames, beads and axes, and the ensemble subpackage computes summary
statistics over such tensors: radius of gyration, radial density profile and
in-silico Hi-C contact maps.
*/
package chrom
