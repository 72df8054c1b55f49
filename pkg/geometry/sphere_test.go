package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, core.Surface{})
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_DeadCenterRoots(t *testing.T) {
	// A ray through dead center enters at centerDistance-radius and the
	// nearer positive root is always selected.
	tests := []struct {
		name      string
		center    core.Vec3
		radius    float64
		expectedT float64
	}{
		{
			name:      "unit sphere four away",
			center:    core.NewVec3(0, 0, -4),
			radius:    1.0,
			expectedT: 3.0,
		},
		{
			name:      "small sphere ten away",
			center:    core.NewVec3(0, 0, -10),
			radius:    0.25,
			expectedT: 9.75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(tt.center, tt.radius, core.Surface{})
			ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

			hit, isHit := sphere.Hit(ray)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestSphere_Hit_OriginInside(t *testing.T) {
	// With the origin inside the sphere only the exit root is ahead.
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2.0, core.Surface{})
	ray := core.NewRay(core.NewVec3(0.5, 0, 0), core.NewVec3(1, 0, 0))

	hit, isHit := sphere.Hit(ray)
	if !isHit {
		t.Fatal("Expected interior hit, but got miss")
	}

	expectedT := 1.5 // exit at x=2
	if math.Abs(hit.T-expectedT) > 1e-9 {
		t.Errorf("Expected exit root t=%f, got t=%f", expectedT, hit.T)
	}

	// The normal stays outward even on interior hits.
	expectedNormal := core.NewVec3(1, 0, 0)
	if hit.Normal.Subtract(expectedNormal).Length() > 1e-9 {
		t.Errorf("Expected outward normal %v, got %v", expectedNormal, hit.Normal)
	}
}

func TestSphere_Hit_BehindOrigin(t *testing.T) {
	// A sphere entirely behind the origin never intersects.
	sphere := NewSphere(core.NewVec3(0, 0, 4), 1.0, core.Surface{})
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if hit, isHit := sphere.Hit(ray); isHit {
		t.Errorf("Expected miss for sphere behind origin, got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_OutwardNormal(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -4), 1.0, core.Surface{})
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	expectedNormal := core.NewVec3(0, 0, 1) // toward the ray origin
	if hit.Normal.Subtract(expectedNormal).Length() > 1e-9 {
		t.Errorf("Expected normal %v, got %v", expectedNormal, hit.Normal)
	}
	if math.Abs(hit.Normal.Length()-1.0) > 1e-9 {
		t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
	}
}

func TestSphere_Hit_Glancing(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, core.Surface{})
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray)
	if !isHit {
		t.Fatal("Expected glancing hit, but got miss")
	}

	expectedPoint := core.NewVec3(1, 0, 0)
	if hit.Point.Subtract(expectedPoint).Length() > 1e-6 {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}
}
