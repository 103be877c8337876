package math

import (
	"errors"
	"testing"
)

type movingView struct {
	position, forward, up Vec3
}

func (v *movingView) GetPosition() Vec3 { return v.position }
func (v *movingView) GetForward() Vec3  { return v.forward }
func (v *movingView) GetUp() Vec3       { return v.up }

func defaultView() *movingView {
	return &movingView{
		position: NewVec3Zero(),
		forward:  NewVec3(0, 0, 1),
		up:       NewVec3(0, 1, 0),
	}
}

func TestTransformIdentity(t *testing.T) {
	tr := NewTransform()
	compareMat4(t, NewMat4Identity(), tr.GetTransformation(), 0)
	if tr.ID == NewTransform().ID {
		t.Error("transforms are expected to have distinct ids")
	}
}

func TestTransformOrder(t *testing.T) {
	// Scale first, then rotate, then translate.
	tr := NewTransformFrom(NewVec3(1, 0, 0), NewVec3(0, 0, 90), NewVec3(2, 2, 2))
	out := NewVec3(1, 0, 0).Transform(tr.GetTransformation())
	if expected := NewVec3(1, 2, 0); !out.Compare(expected, 1e-5) {
		t.Errorf("expected %+v, got %+v", expected, out)
	}
}

func TestTransformMutators(t *testing.T) {
	tr := NewTransform()
	tr.SetTranslationXYZ(1, 2, 3).Translate(NewVec3(1, 1, 1)).ScaleBy(NewVec3(2, 3, 4))
	if tr.Translation != NewVec3(2, 3, 4) {
		t.Errorf("unexpected translation %+v", tr.Translation)
	}
	if tr.Scale != NewVec3(2, 3, 4) {
		t.Errorf("unexpected scale %+v", tr.Scale)
	}

	tr.SetRotation(NewVec3(350, 0, 10)).Rotate(NewVec3(20, -30, 0))
	if !tr.Rotation.Compare(NewVec3(10, 330, 10), 1e-4) {
		t.Errorf("unexpected rotation %+v", tr.Rotation)
	}
}

func TestCreateProjectionMatrix(t *testing.T) {
	m := CreateProjectionMatrix(90, 800, 800, 0.5, -0.5)

	if kabs(m.At(0, 0)-1) > epsilon {
		t.Errorf("m(0, 0) expected to be 1, got %f", m.At(0, 0))
	}
	if kabs(m.At(1, 1)-1) > epsilon {
		t.Errorf("m(1, 1) expected to be 1, got %f", m.At(1, 1))
	}
	if m.At(3, 2) != 1 {
		t.Errorf("m(3, 2) expected to be 1, got %f", m.At(3, 2))
	}
	if m.At(2, 2) != 0 {
		t.Errorf("m(2, 2) expected to be 0, got %f", m.At(2, 2))
	}
	if kabs(m.At(2, 3)+0.5) > epsilon {
		t.Errorf("m(2, 3) expected to be -0.5, got %f", m.At(2, 3))
	}
	if m.At(3, 3) != 0 {
		t.Errorf("m(3, 3) expected to be 0, got %f", m.At(3, 3))
	}

	wide := CreateProjectionMatrix(90, 1600, 800, 0.5, -0.5)
	if kabs(wide.At(0, 0)-0.5) > epsilon {
		t.Errorf("aspect ratio 2: m(0, 0) expected to be 0.5, got %f", wide.At(0, 0))
	}
}

func TestProjectionValidate(t *testing.T) {
	testCases := map[string]struct {
		projection Projection
		valid      bool
	}{
		"default":      {NewProjectionDefault(), true},
		"zero height":  {NewProjectionDefault().Resized(800, 0), false},
		"zero width":   {NewProjectionDefault().Resized(0, 800), false},
		"zero fov":     {Projection{FieldOfView: 0, Width: 1, Height: 1, ZNear: 0.1, ZFar: 100}, false},
		"equal planes": {Projection{FieldOfView: 60, Width: 1, Height: 1, ZNear: 1, ZFar: 1}, false},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := tc.projection.Validate()
			if tc.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidProjection) {
				t.Errorf("expected ErrInvalidProjection, got %v", err)
			}
		})
	}
}

func TestGetProjectedTransformation(t *testing.T) {
	tr := NewTransform().SetTranslation(NewVec3(0, 0, 2))
	ctx := NewFrameContext(NewProjectionDefault(), defaultView())

	mvp, err := tr.GetProjectedTransformation(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testCases := map[string]struct {
		point    Vec3
		expected Vec3
	}{
		"center": {NewVec3(0, 0, 0), NewVec3(0, 0, -0.25)},
		"corner": {NewVec3(1, 1, 0), NewVec3(0.5, 0.5, -0.25)},
		"behind": {NewVec3(-1, 0, 2), NewVec3(-0.25, 0, -0.125)},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			ndc, ok := ProjectPoint(mvp, tc.point)
			if !ok {
				t.Fatal("expected a finite projection")
			}
			if !ndc.Compare(tc.expected, epsilon) {
				t.Errorf("expected %+v, got %+v", tc.expected, ndc)
			}
		})
	}
}

func TestGetProjectedTransformationFollowsCamera(t *testing.T) {
	tr := NewTransform()
	view := defaultView()
	view.position = NewVec3(0, 0, -2)
	ctx := NewFrameContext(NewProjectionDefault(), view)

	mvp, err := tr.GetProjectedTransformation(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ndc, ok := ProjectPoint(mvp, NewVec3(1, 1, 0))
	if !ok {
		t.Fatal("expected a finite projection")
	}
	if expected := NewVec3(0.5, 0.5, -0.25); !ndc.Compare(expected, epsilon) {
		t.Errorf("expected %+v, got %+v", expected, ndc)
	}

	// The same point seen from the side lands in the center.
	view.position = NewVec3(-2, 0, 0)
	view.forward = NewVec3(1, 0, 0)
	mvp, err = tr.GetProjectedTransformation(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ndc, _ = ProjectPoint(mvp, NewVec3(0, 0, 0))
	if !ndc.Compare(NewVec3(0, 0, -0.25), epsilon) {
		t.Errorf("expected (0, 0, -0.25), got %+v", ndc)
	}
}

func TestGetProjectedTransformationErrors(t *testing.T) {
	tr := NewTransform()

	if _, err := tr.GetProjectedTransformation(FrameContext{Projection: NewProjectionDefault()}); !errors.Is(err, ErrMissingCamera) {
		t.Errorf("expected ErrMissingCamera, got %v", err)
	}

	// A nil camera pointer is still no camera.
	var unset *movingView
	ctx := NewFrameContext(NewProjectionDefault(), unset)
	if ctx.Camera != nil {
		t.Errorf("expected the nil camera to be dropped, got %v", ctx.Camera)
	}
	if _, err := tr.GetProjectedTransformation(ctx); !errors.Is(err, ErrMissingCamera) {
		t.Errorf("expected ErrMissingCamera, got %v", err)
	}
	typed := FrameContext{Projection: NewProjectionDefault(), Camera: unset}
	if _, err := tr.GetProjectedTransformation(typed); !errors.Is(err, ErrMissingCamera) {
		t.Errorf("expected ErrMissingCamera, got %v", err)
	}
	if _, err := typed.Snapshot(); !errors.Is(err, ErrMissingCamera) {
		t.Errorf("expected ErrMissingCamera from Snapshot, got %v", err)
	}
	if _, err := typed.ViewMatrix(); !errors.Is(err, ErrMissingCamera) {
		t.Errorf("expected ErrMissingCamera from ViewMatrix, got %v", err)
	}

	ctx = NewFrameContext(NewProjectionDefault().Resized(800, 0), defaultView())
	if _, err := tr.GetProjectedTransformation(ctx); !errors.Is(err, ErrInvalidProjection) {
		t.Errorf("expected ErrInvalidProjection, got %v", err)
	}

	view := defaultView()
	view.forward = NewVec3Zero()
	ctx = NewFrameContext(NewProjectionDefault(), view)
	if _, err := tr.GetProjectedTransformation(ctx); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestFrameContextSnapshot(t *testing.T) {
	view := defaultView()
	ctx := NewFrameContext(NewProjectionDefault(), view)

	snapshot, err := ctx.Snapshot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view.position = NewVec3(10, 10, 10)
	if snapshot.Camera.GetPosition() != NewVec3Zero() {
		t.Errorf("snapshot must not follow the live camera, got %+v", snapshot.Camera.GetPosition())
	}

	if _, err := (FrameContext{}).Snapshot(); !errors.Is(err, ErrMissingCamera) {
		t.Errorf("expected ErrMissingCamera, got %v", err)
	}
}

func TestCreateCameraMatrixOrthonormal(t *testing.T) {
	forward, _ := NewVec3(1, 0, 1).Normalize()
	up := NewVec3(0, 1, 0)
	m, err := CreateCameraMatrix(forward, up)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := [3]Vec3{
		{m.At(0, 0), m.At(0, 1), m.At(0, 2)},
		{m.At(1, 0), m.At(1, 1), m.At(1, 2)},
		{m.At(2, 0), m.At(2, 1), m.At(2, 2)},
	}
	for i := range rows {
		if kabs(rows[i].Length()-1) > epsilon {
			t.Errorf("row %d is not unit length: %f", i, rows[i].Length())
		}
		for j := i + 1; j < len(rows); j++ {
			if d := rows[i].Dot(rows[j]); kabs(d) > epsilon {
				t.Errorf("rows %d and %d are not orthogonal: %f", i, j, d)
			}
		}
	}
	// The camera looks down its own +z.
	if out := forward.Transform(m); !out.Compare(NewVec3(0, 0, 1), epsilon) {
		t.Errorf("expected forward to map onto +z, got %+v", out)
	}
}

func TestNDCToScreen(t *testing.T) {
	testCases := map[string]struct {
		ndc      Vec3
		expected Vec2
	}{
		"center":       {NewVec3(0, 0, 0), NewVec2(400, 300)},
		"top left":     {NewVec3(-1, 1, 0), NewVec2(0, 0)},
		"bottom right": {NewVec3(1, -1, 0), NewVec2(800, 600)},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if out := NDCToScreen(tc.ndc, 800, 600); out != tc.expected {
				t.Errorf("expected %+v, got %+v", tc.expected, out)
			}
		})
	}
}

func TestWrapDegreesAndClamp(t *testing.T) {
	testCases := map[float32]float32{
		0:    0,
		359:  359,
		360:  0,
		725:  5,
		-90:  270,
		-720: 0,
	}
	for in, expected := range testCases {
		if out := WrapDegrees(in); kabs(out-expected) > epsilon {
			t.Errorf("WrapDegrees(%f) expected %f, got %f", in, expected, out)
		}
	}

	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Error("unexpected Clamp result")
	}
}

func TestElevation(t *testing.T) {
	testCases := map[string]struct {
		direction Vec3
		expected  float32
	}{
		"level":       {NewVec3(0, 0, 1), 0},
		"straight up": {NewVec3(0, 3, 0), 90},
		"down":        {NewVec3(0, -1, 0), -90},
		"diagonal":    {NewVec3(1, 1, 0), 45},
		"zero":        {NewVec3Zero(), 0},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if out := Elevation(tc.direction); kabs(out-tc.expected) > 1e-3 {
				t.Errorf("expected %f, got %f", tc.expected, out)
			}
		})
	}
}
