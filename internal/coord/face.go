package coord

// Face is one of the six axis directions of a cube.
type Face int

const (
	FacePosX Face = iota
	FacePosY
	FacePosZ
	FaceNegX
	FaceNegY
	FaceNegZ
)

// Faces lists every face; positive directions first.
var Faces = [6]Face{FacePosX, FacePosY, FacePosZ, FaceNegX, FaceNegY, FaceNegZ}

var faceNormals = [6]BlockVector{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
	{-1, 0, 0},
	{0, -1, 0},
	{0, 0, -1},
}

var faceNames = [6]string{"+x", "+y", "+z", "-x", "-y", "-z"}

func (f Face) Normal() BlockVector {
	return faceNormals[f]
}

func (f Face) Opposite() Face {
	return (f + 3) % 6
}

func (f Face) String() string {
	if f < 0 || int(f) >= len(faceNames) {
		return "invalid"
	}
	return faceNames[f]
}

// FaceOf returns the face whose normal equals n.
func FaceOf(n BlockVector) (Face, bool) {
	for _, f := range Faces {
		if faceNormals[f] == n {
			return f, true
		}
	}
	return 0, false
}
