package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"juliette/camera"
	"juliette/config"
	"juliette/entity"
	"juliette/math"
	"juliette/physics"
	"juliette/populate"
	"juliette/scene"
)

const (
	sceneName   = "My Scene"
	physicsName = "Physics Scene"
	objectName  = "Object"
	wallName    = "Wall"

	// orthoSize is the initial half-extent used after switching to an
	// orthographic projection.
	orthoSize = 10
)

// grid is the debug floor grid.
type grid struct {
	size      float32
	divisions int
	y         float32
}

// modelOffsets shifts the viewer model one unit forward. Physics bodies keep
// the model centered on their collider.
func modelOffsets(v config.Variant) scene.Offsets {
	if walled(v) {
		return scene.NoOffsets()
	}
	return scene.Offsets{Position: math.NewVec3(0, 0, 1), Scale: math.Vec3One}
}

// walled reports whether the variant builds the physics box.
func walled(v config.Variant) bool {
	return v == config.Physics || v == config.Benchmark
}

// levelWalls encloses the cube [-b, b] with a floor and four walls, each one
// unit thick.
func levelWalls(b float32) []populate.Fixed {
	extent := 2*b + 4
	height := 2*b + 2
	offset := b + 1.5
	return []populate.Fixed{
		{Position: math.NewVec3(0, -b-1, 0), Scale: math.NewVec3(extent, 1, extent)},
		{Position: math.NewVec3(offset, 0, 0), Scale: math.NewVec3(1, height, extent)},
		{Position: math.NewVec3(-offset, 0, 0), Scale: math.NewVec3(1, height, extent)},
		{Position: math.NewVec3(0, 0, offset), Scale: math.NewVec3(extent, height, 1)},
		{Position: math.NewVec3(0, 0, -offset), Scale: math.NewVec3(extent, height, 1)},
	}
}

// cameraStart places the camera on -X looking along +X at the population.
func cameraStart(cfg config.Config) (position, rotation math.Vec3) {
	if !walled(cfg.Variant) {
		return math.NewVec3(-3, 0, 0), math.Vec3Zero
	}
	b := cfg.SpawnBounds
	return math.NewVec3(-(2*b + 8), b/2, 0), math.NewVec3(-15, 0, 0)
}

func (a *App) buildWorld() error {
	model, materials, err := a.loadModel()
	if err != nil {
		return err
	}

	var walls []populate.Fixed
	a.grid = grid{size: 20, divisions: 20, y: -1}
	if walled(a.Config.Variant) {
		b := a.Config.SpawnBounds
		walls = levelWalls(b)
		extent := 2*b + 4
		a.grid = grid{size: extent, divisions: int(extent), y: -b - 0.49}
	}
	count := a.Config.ObjectCount

	a.Entities = entity.NewArena(count + len(walls) + 1)

	maxBatches := 1
	if len(walls) > 0 {
		maxBatches = 2
	}
	a.Scene = scene.NewScene(sceneName, a.Entities, maxBatches)
	a.Scene.Culling = a.Config.FrustumCulling

	if len(walls) > 0 {
		a.Physics = physics.NewScene(physicsName, a.Entities, count+len(walls),
			a.Config.Drag, math.NewVec3(0, -a.Config.Gravity, 0), a.Config.Elasticity)
	}
	builder := populate.NewBuilder(a.Entities, a.Physics, a.Config.Seed)

	if len(walls) > 0 {
		wallMaterial := materials.Lookup(wallName)
		batch, err := a.Scene.CreateBatch("Level Batch", scene.CreateCubeModel(wallName, 1, wallMaterial), len(walls))
		if err != nil {
			return err
		}
		for _, w := range walls {
			if _, err := builder.Populate(wallName, batch, 1, w); err != nil {
				return err
			}
		}
	}

	batch, err := a.Scene.CreateBatch("Object Batch", model, count)
	if err != nil {
		return err
	}
	var policy populate.Policy = populate.Fixed{Scale: math.Vec3One}
	if len(walls) > 0 {
		policy = populate.Random{
			Bounds:        a.Config.SpawnBounds,
			Scale:         math.Vec3One,
			Mass:          1,
			VelocityLimit: a.Config.VelocityLimit,
		}
	}
	a.spinning, err = builder.Populate(objectName, batch, count, policy)
	if err != nil {
		return err
	}

	pos, rot := cameraStart(a.Config)
	slot, err := a.Entities.Create("Main Camera", pos, rot, math.Vec3One)
	if err != nil {
		return fmt.Errorf("main camera: %w", err)
	}
	cam := scene.NewCamera(slot)
	cam.Size = a.Config.FieldOfView
	cam.NearClipPlane = a.Config.NearPlane
	cam.FarClipPlane = a.Config.FarPlane
	a.Scene.SetMainCamera(cam)
	a.altSize = orthoSize

	a.Camera = camera.NewFreeLook(a.Entities, cam)
	a.Camera.Speed = a.Config.CameraSpeed
	a.Camera.RotationSpeed = a.Config.CameraRotationSpeed

	if a.Config.PlayerControl {
		a.Player = &camera.Player{Entities: a.Entities, Slot: a.spinning[0], Speed: a.Config.CameraSpeed}
	}

	logger.Infof("scene %q: %d entities in %d batches", a.Scene.Name, a.Entities.Len(), len(a.Scene.Batches))
	return nil
}

// loadModel reads ModelName as a glTF file when it has a .gltf or .glb
// extension, and as a .mdl/.mat pair otherwise.
func (a *App) loadModel() (*scene.Model, scene.Materials, error) {
	name := a.Config.ModelName
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gltf", ".glb":
		path := filepath.Join(a.Loader.Root, modelDir, name)
		model, err := scene.LoadModelGLTF(strings.TrimSuffix(name, filepath.Ext(name)), path, modelOffsets(a.Config.Variant))
		if err != nil {
			return nil, nil, err
		}
		return model, scene.Materials{model.Material}, nil
	}

	materials, err := a.loadMaterials(name + ".mat")
	if err != nil {
		return nil, nil, err
	}

	text, err := a.Loader.LoadText(name+".mdl", modelDir)
	if err != nil {
		return nil, nil, err
	}
	defer text.Release()

	model, err := scene.CreateModel(name, text.Data, text.LineCount, materials, modelOffsets(a.Config.Variant))
	if err != nil {
		return nil, nil, fmt.Errorf("model %q: %w", name, err)
	}
	logger.Infof("model %q: %d vertices, %d faces", name, model.VertexCount(), model.FaceCount())
	return model, materials, nil
}

func (a *App) loadMaterials(file string) (scene.Materials, error) {
	text, err := a.Loader.LoadText(file, modelDir)
	if err != nil {
		return nil, err
	}
	defer text.Release()

	if a.Config.TextureName == "" {
		materials, err := scene.CreateMaterialsFromFile(text.Data, text.LineCount)
		if err != nil {
			return nil, fmt.Errorf("materials %q: %w", file, err)
		}
		return materials, nil
	}

	img, err := a.Loader.LoadImage(a.Config.TextureName, textureDir)
	if err != nil {
		return nil, err
	}
	defer img.Release()

	materials, err := scene.CreateMaterialsWithTexture(text.Data, text.LineCount, img.Data, img.Width, img.Height, img.Channels)
	if err != nil {
		return nil, fmt.Errorf("materials %q: %w", file, err)
	}
	return materials, nil
}
