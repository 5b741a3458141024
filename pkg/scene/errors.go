package scene

import "errors"

var (
	ErrEmptyDescription = errors.New("scene: description defines no shapes")
	ErrUnknownLightType = errors.New("scene: unknown light type")
	ErrSphereScale      = errors.New("scene: spheres cannot be scaled; set the radius instead")
)
