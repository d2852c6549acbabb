package evdisplay

import (
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

// NewPCD converts the cloud to a PCD point cloud with fields x y z c.
func NewPCD(cloud PointCloud) (*pc.PointCloud, error) {
	pp := &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Version:   0.7,
			Fields:    []string{"x", "y", "z", "c"},
			Size:      []int{4, 4, 4, 4},
			Type:      []string{"F", "F", "F", "F"},
			Count:     []int{1, 1, 1, 1},
			Width:     cloud.Len(),
			Height:    1,
			Viewpoint: []float32{0, 0, 0, 1, 0, 0, 0},
		},
		Points: cloud.Len(),
	}
	pp.Data = make([]byte, cloud.Len()*pp.Stride())
	if cloud.Len() == 0 {
		return pp, nil
	}

	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	stride := pp.Stride()
	for i, p := range cloud.Points {
		it.SetVec3(mat.Vec3{float32(p.X), float32(p.Y), float32(p.Z)})
		it.Incr()
		// c follows x y z in every point
		binary.LittleEndian.PutUint32(pp.Data[i*stride+12:], math.Float32bits(float32(p.Value)))
	}
	return pp, nil
}

func WritePCD(w io.Writer, cloud PointCloud) error {
	pp, err := NewPCD(cloud)
	if err != nil {
		return err
	}
	return pc.Marshal(pp, w)
}

func WritePCDFile(filename string, cloud PointCloud) error {
	f, err := os.Create(filename)
	if err != nil {
		return &ErrWriteOutput{Filename: filename, Err: err}
	}
	if err := WritePCD(f, cloud); err != nil {
		f.Close()
		return &ErrWriteOutput{Filename: filename, Err: err}
	}
	if err := f.Close(); err != nil {
		return &ErrWriteOutput{Filename: filename, Err: err}
	}
	return nil
}
