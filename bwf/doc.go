/*Package bwf implements the BWF (binary wavefunction) format, a compressed
binary snapshot of a complete wave.ReciprocalWavefunction.

The payload is little-endian binary inside a zstd stream: a 4-byte magic
("BWF1"), the real-space lattice matrix, the k-point list with its weights,
the spin/k-point/band axis lengths, and then, per state in spin-major order,
its energy, occupancy, grid shape and complex coefficients in storage order.
Grids are always written dense; a caller holding sparse data densifies it
first. BWF is a snapshot format for checkpointing and transfer between
programs using this library, not a text format, and it carries no metadata
beyond what the wavefunction itself holds.*/
package bwf
