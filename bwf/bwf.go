package bwf

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	wave "github.com/rmera/gowave"
	"github.com/rmera/gowave/lattice"
	"github.com/rmera/gowave/miller"
)

//the 4 bytes opening every BWF stream
var magic = [4]byte{'B', 'W', 'F', '1'}

//Write writes a compressed binary snapshot of W to the named file. The
//optional argument is the zstd compression level (1 fastest, 4 best); the
//default favors speed, as coefficient data is large.
func Write(name string, W *wave.ReciprocalWavefunction, compressionLevel ...int) error {
	if W == nil {
		return Error{"given a nil wavefunction", name, []string{"Write"}, true}
	}
	level := zstd.SpeedDefault
	if len(compressionLevel) > 0 {
		level = zstd.EncoderLevelFromZstd(compressionLevel[0])
	}
	f, err := os.Create(name)
	if err != nil {
		return Error{err.Error(), name, []string{"Write"}, true}
	}
	defer f.Close()
	z, err := zstd.NewWriter(f, zstd.WithEncoderLevel(level))
	if err != nil {
		return Error{err.Error(), name, []string{"Write"}, true}
	}
	if err := Encode(z, W); err != nil {
		z.Close()
		return errDecorate(err, "Write", name)
	}
	if err := z.Close(); err != nil {
		return Error{err.Error(), name, []string{"Write"}, true}
	}
	return nil
}

//Read reads back a wavefunction written by Write.
func Read(name string) (*wave.ReciprocalWavefunction, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"Read"}, true}
	}
	defer f.Close()
	z, err := zstd.NewReader(f)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"Read"}, true}
	}
	defer z.Close()
	W, err := Decode(z)
	if err != nil {
		return nil, errDecorate(err, "Read", name)
	}
	return W, nil
}

//Encode writes the uncompressed BWF payload of W to out. Most callers want
//Write instead, which adds the zstd layer.
func Encode(out io.Writer, W *wave.ReciprocalWavefunction) error {
	w := func(data any) error { return binary.Write(out, binary.LittleEndian, data) }
	if err := w(magic); err != nil {
		return Error{err.Error(), "", []string{"Encode"}, true}
	}
	m := W.Lattice().Matrix()
	lat := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			lat = append(lat, m.At(i, j))
		}
	}
	kpts := W.KPoints()
	header := []any{
		lat,
		int32(kpts.Len()),
	}
	for _, data := range header {
		if err := w(data); err != nil {
			return Error{err.Error(), "", []string{"Encode"}, true}
		}
	}
	for i := 0; i < kpts.Len(); i++ {
		p, weight := kpts.At(i)
		if err := w(p[:]); err != nil {
			return Error{err.Error(), "", []string{"Encode"}, true}
		}
		if err := w(weight); err != nil {
			return Error{err.Error(), "", []string{"Encode"}, true}
		}
	}
	if err := w([]int32{int32(W.NSpins()), int32(W.NBands())}); err != nil {
		return Error{err.Error(), "", []string{"Encode"}, true}
	}
	for s := 0; s < W.NSpins(); s++ {
		for k := 0; k < W.NKPoints(); k++ {
			for b := 0; b < W.NBands(); b++ {
				st := W.State(s, k, b)
				sz := st.Coeffs.Sizes()
				fields := []any{
					st.Energy,
					st.Occupancy,
					[]int32{int32(sz[0]), int32(sz[1]), int32(sz[2])},
					st.Coeffs.Data(),
				}
				for _, data := range fields {
					if err := w(data); err != nil {
						return Error{err.Error(), "", []string{"Encode"}, true}
					}
				}
			}
		}
	}
	return nil
}

//Decode reads an uncompressed BWF payload and rebuilds the wavefunction.
//The coefficient grids are attached to the reciprocal of the snapshot's
//lattice.
func Decode(in io.Reader) (*wave.ReciprocalWavefunction, error) {
	r := func(data any) error { return binary.Read(in, binary.LittleEndian, data) }
	var gotMagic [4]byte
	if err := r(&gotMagic); err != nil {
		return nil, Error{err.Error(), "", []string{"Decode"}, true}
	}
	if gotMagic != magic {
		return nil, Error{fmt.Sprintf("bad magic %q, not a BWF stream", gotMagic), "", []string{"Decode"}, true}
	}
	lat := make([]float64, 9)
	if err := r(lat); err != nil {
		return nil, Error{err.Error(), "", []string{"Decode"}, true}
	}
	direct, err := lattice.New[lattice.RealSpace](lat)
	if err != nil {
		return nil, Error{err.Error(), "", []string{"Decode"}, true}
	}
	recip := lattice.ToReciprocal(direct)
	var nkpts int32
	if err := r(&nkpts); err != nil {
		return nil, Error{err.Error(), "", []string{"Decode"}, true}
	}
	if nkpts < 1 {
		return nil, Error{fmt.Sprintf("nonsensical k-point count %d", nkpts), "", []string{"Decode"}, true}
	}
	points := make([][3]float64, nkpts)
	weights := make([]float64, nkpts)
	for i := range points {
		if err := r(points[i][:]); err != nil {
			return nil, Error{err.Error(), "", []string{"Decode"}, true}
		}
		if err := r(&weights[i]); err != nil {
			return nil, Error{err.Error(), "", []string{"Decode"}, true}
		}
	}
	kpts, err := wave.NewKPointList(points, weights)
	if err != nil {
		return nil, Error{err.Error(), "", []string{"Decode"}, true}
	}
	axes := make([]int32, 2)
	if err := r(axes); err != nil {
		return nil, Error{err.Error(), "", []string{"Decode"}, true}
	}
	nspins, nbands := int(axes[0]), int(axes[1])
	if nspins < 1 || nbands < 1 {
		return nil, Error{fmt.Sprintf("nonsensical axis lengths: %d spins, %d bands", nspins, nbands), "", []string{"Decode"}, true}
	}
	coeffs := make([][][]*miller.Grid[complex128], nspins)
	energies := make([][][]float64, nspins)
	occs := make([][][]float64, nspins)
	for s := 0; s < nspins; s++ {
		coeffs[s] = make([][]*miller.Grid[complex128], nkpts)
		energies[s] = make([][]float64, nkpts)
		occs[s] = make([][]float64, nkpts)
		for k := 0; k < int(nkpts); k++ {
			coeffs[s][k] = make([]*miller.Grid[complex128], nbands)
			energies[s][k] = make([]float64, nbands)
			occs[s][k] = make([]float64, nbands)
			for b := 0; b < nbands; b++ {
				if err := r(&energies[s][k][b]); err != nil {
					return nil, Error{err.Error(), "", []string{"Decode"}, true}
				}
				if err := r(&occs[s][k][b]); err != nil {
					return nil, Error{err.Error(), "", []string{"Decode"}, true}
				}
				sz32 := make([]int32, 3)
				if err := r(sz32); err != nil {
					return nil, Error{err.Error(), "", []string{"Decode"}, true}
				}
				size := [3]int{int(sz32[0]), int(sz32[1]), int(sz32[2])}
				if size[0] < 1 || size[1] < 1 || size[2] < 1 {
					return nil, Error{fmt.Sprintf("nonsensical grid size %v", size), "", []string{"Decode"}, true}
				}
				data := make([]complex128, size[0]*size[1]*size[2])
				if err := r(data); err != nil {
					return nil, Error{err.Error(), "", []string{"Decode"}, true}
				}
				g, err := miller.NewGrid(recip, data, size)
				if err != nil {
					return nil, Error{err.Error(), "", []string{"Decode"}, true}
				}
				coeffs[s][k][b] = g
			}
		}
	}
	W, err := wave.NewReciprocalWavefunction(direct, kpts, coeffs, energies, occs)
	if err != nil {
		return nil, Error{err.Error(), "", []string{"Decode"}, true}
	}
	return W, nil
}

//Errors

//Error is the BWF format error type. It satisfies wave.Error and carries the
//file the failing snapshot was associated to, or an empty string if none.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("bwf error: %s", err.message)
	}
	return fmt.Sprintf("bwf file %s error: %s", err.filename, err.message)
}

//Decorate Adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file the failing snapshot was associated to.
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

//errDecorate decorates err with the caller's name and, if err is a bwf
//Error missing one, the file name.
func errDecorate(err error, caller, filename string) error {
	if e, ok := err.(Error); ok {
		e.deco = append(e.deco, caller)
		if e.filename == "" {
			e.filename = filename
		}
		return e
	}
	return err
}
