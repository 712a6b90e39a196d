package maya

import (
	"github.com/danmuck/mayactl/internal/command"
	"github.com/danmuck/mayactl/internal/tools"
)

var modelTypes = []string{"car", "tree", "building", "cup", "chair"}

var sceneTypes = []string{"city", "forest", "living_room", "office", "park"}

func modelSpecs() []tools.Spec {
	return []tools.Spec{
		{
			Name:        "create_advanced_model",
			Description: "Create a multi-part model assembled from primitives: car, tree, building, cup, or chair.",
			Args: []command.ArgSpec{
				{Name: "model_type", Kind: command.KindEnum, Required: true, Enum: modelTypes, Help: "Model to build"},
				{Name: "name", Kind: command.KindString, Help: "Name for the model group"},
				{Name: "scale", Kind: command.KindNumber, Default: 1.0, Help: "Uniform scale factor"},
				{Name: "translate", Kind: command.KindVec3, Default: []float64{0, 0, 0}, Help: "Position [x, y, z]"},
				{Name: "rotate", Kind: command.KindVec3, Default: []float64{0, 0, 0}, Help: "Rotation [x, y, z] in degrees"},
				{Name: "color", Kind: command.KindVec3, Default: []float64{0.5, 0.5, 0.5}, Help: "Base RGB color, components in 0..1"},
				{Name: "parameters", Kind: command.KindMap, Help: "Model-specific settings, e.g. {'floors': 5}"},
			},
			Source: createAdvancedModelSource,
		},
		{
			Name:        "generate_scene",
			Description: "Generate a themed scene layout: city, forest, living_room, office, or park. Objects are grouped under one root.",
			Args: []command.ArgSpec{
				{Name: "scene_type", Kind: command.KindEnum, Required: true, Enum: sceneTypes, Help: "Scene theme to generate"},
				{Name: "name", Kind: command.KindString, Help: "Name for the scene group"},
				{Name: "parameters", Kind: command.KindMap, Help: "Theme settings, e.g. {'count': 12, 'area': 40.0}"},
			},
			Source: generateSceneSource,
		},
	}
}

const createAdvancedModelSource = `def create_advanced_model(model_type, name=None, scale=None, translate=None, rotate=None, color=None, parameters=None):
    import maya.cmds as cmds
    if parameters is None:
        parameters = {}
    if name is None:
        name = model_type + '1'
    parts = []

    def shade(objs, rgb, label):
        shader = cmds.shadingNode('lambert', asShader=True, name=name + '_' + label + '_mat')
        cmds.setAttr(shader + '.color', rgb[0], rgb[1], rgb[2], type='double3')
        sg = cmds.sets(renderable=True, noSurfaceShader=True, empty=True, name=shader + 'SG')
        cmds.connectAttr(shader + '.outColor', sg + '.surfaceShader', force=True)
        cmds.sets(objs, edit=True, forceElement=sg)

    def part(obj, tx, ty, tz):
        obj = str(obj)
        cmds.setAttr(obj + '.translate', tx, ty, tz, type='double3')
        parts.append(obj)
        return obj

    if model_type == 'car':
        body = part(cmds.polyCube(width=4, height=1, depth=2, name=name + '_body')[0], 0, 1.0, 0)
        cabin = part(cmds.polyCube(width=2, height=0.8, depth=1.8, name=name + '_cabin')[0], -0.2, 1.9, 0)
        shade([body, cabin], color, 'body')
        wheels = []
        for i, (x, z) in enumerate([(-1.3, 1.0), (1.3, 1.0), (-1.3, -1.0), (1.3, -1.0)]):
            wheel = part(cmds.polyCylinder(radius=0.5, height=0.3, name=name + '_wheel' + str(i + 1))[0], x, 0.5, z)
            cmds.setAttr(wheel + '.rotateX', 90)
            wheels.append(wheel)
        shade(wheels, [0.1, 0.1, 0.1], 'wheel')
    elif model_type == 'tree':
        trunk_height = parameters.get('trunk_height', 3.0)
        trunk = part(cmds.polyCylinder(radius=0.3, height=trunk_height, name=name + '_trunk')[0], 0, trunk_height / 2.0, 0)
        shade([trunk], [0.35, 0.22, 0.12], 'trunk')
        canopy = part(cmds.polySphere(radius=parameters.get('canopy_radius', 1.8), name=name + '_canopy')[0], 0, trunk_height + 1.2, 0)
        cmds.setAttr(canopy + '.scaleY', 1.2)
        shade([canopy], parameters.get('canopy_color', [0.15, 0.45, 0.15]), 'canopy')
    elif model_type == 'building':
        floors = int(parameters.get('floors', 5))
        width = parameters.get('width', 4.0)
        floor_height = parameters.get('floor_height', 2.5)
        height = floors * floor_height
        tower = part(cmds.polyCube(width=width, height=height, depth=width, name=name + '_tower')[0], 0, height / 2.0, 0)
        shade([tower], color, 'walls')
        roof = part(cmds.polyCube(width=width * 1.05, height=0.3, depth=width * 1.05, name=name + '_roof')[0], 0, height + 0.15, 0)
        shade([roof], [0.2, 0.2, 0.2], 'roof')
    elif model_type == 'cup':
        body = part(cmds.polyCylinder(radius=1.0, height=2.0, subdivisionsAxis=16, name=name + '_body')[0], 0, 1.0, 0)
        shade([body], color, 'body')
        handle = part(cmds.polyTorus(radius=0.6, sectionRadius=0.12, name=name + '_handle')[0], 1.2, 1.0, 0)
        cmds.setAttr(handle + '.rotateX', 90)
        shade([handle], color, 'handle')
    elif model_type == 'chair':
        seat = part(cmds.polyCube(width=2, height=0.2, depth=2, name=name + '_seat')[0], 0, 1.5, 0)
        back = part(cmds.polyCube(width=2, height=2, depth=0.2, name=name + '_back')[0], 0, 2.5, -0.9)
        legs = []
        for i, (x, z) in enumerate([(-0.9, 0.9), (0.9, 0.9), (-0.9, -0.9), (0.9, -0.9)]):
            legs.append(part(cmds.polyCube(width=0.2, height=1.5, depth=0.2, name=name + '_leg' + str(i + 1))[0], x, 0.75, z))
        shade([seat, back] + legs, color, 'wood')
    else:
        raise ValueError('Error: unknown model type ' + model_type)

    group = str(cmds.group(*parts, name=name))
    cmds.setAttr(group + '.translate', translate[0], translate[1], translate[2], type='double3')
    cmds.setAttr(group + '.rotate', rotate[0], rotate[1], rotate[2], type='double3')
    cmds.setAttr(group + '.scale', scale, scale, scale, type='double3')
    return {'success': True, 'name': group, 'model_type': model_type, 'parts': parts}`

const generateSceneSource = `def generate_scene(scene_type, name=None, parameters=None):
    import random
    import maya.cmds as cmds
    if parameters is None:
        parameters = {}
    if name is None:
        name = scene_type + '_scene'
    seed = parameters.get('seed')
    rng = random.Random(seed)
    area = parameters.get('area', 40.0)
    count = int(parameters.get('count', 10))
    half = area / 2.0
    parts = []

    def place(obj, x, y, z):
        obj = str(obj)
        cmds.setAttr(obj + '.translate', x, y, z, type='double3')
        parts.append(obj)
        return obj

    place(cmds.polyPlane(width=area, height=area, name=name + '_ground')[0], 0, 0, 0)

    if scene_type == 'city':
        for i in range(count):
            h = rng.uniform(4.0, 16.0)
            w = rng.uniform(2.0, 4.0)
            tower = cmds.polyCube(width=w, height=h, depth=w, name=name + '_building' + str(i + 1))[0]
            place(tower, rng.uniform(-half, half), h / 2.0, rng.uniform(-half, half))
    elif scene_type == 'forest':
        for i in range(count):
            th = rng.uniform(2.0, 5.0)
            trunk = cmds.polyCylinder(radius=0.25, height=th, name=name + '_trunk' + str(i + 1))[0]
            x, z = rng.uniform(-half, half), rng.uniform(-half, half)
            place(trunk, x, th / 2.0, z)
            canopy = cmds.polySphere(radius=th * 0.4, name=name + '_canopy' + str(i + 1))[0]
            place(canopy, x, th + th * 0.3, z)
    elif scene_type == 'living_room':
        place(cmds.polyCube(width=6, height=1, depth=2.5, name=name + '_sofa')[0], 0, 0.5, -half * 0.4)
        place(cmds.polyCube(width=3, height=0.8, depth=1.5, name=name + '_table')[0], 0, 0.4, 0)
        place(cmds.polyCube(width=4, height=2.5, depth=0.3, name=name + '_screen')[0], 0, 1.25, half * 0.4)
    elif scene_type == 'office':
        rows = max(1, count // 3)
        for i in range(rows * 3):
            row, col = divmod(i, 3)
            x = (col - 1) * 5.0
            z = row * 4.0 - half * 0.5
            place(cmds.polyCube(width=2.5, height=1.2, depth=1.2, name=name + '_desk' + str(i + 1))[0], x, 0.6, z)
            place(cmds.polyCube(width=1, height=1.6, depth=1, name=name + '_chair' + str(i + 1))[0], x, 0.8, z + 1.5)
    elif scene_type == 'park':
        for i in range(count):
            kind = rng.choice(['tree', 'bench', 'rock'])
            x, z = rng.uniform(-half, half), rng.uniform(-half, half)
            if kind == 'tree':
                trunk = cmds.polyCylinder(radius=0.25, height=3.0, name=name + '_tree' + str(i + 1))[0]
                place(trunk, x, 1.5, z)
            elif kind == 'bench':
                bench = cmds.polyCube(width=2.5, height=0.6, depth=0.8, name=name + '_bench' + str(i + 1))[0]
                place(bench, x, 0.3, z)
            else:
                rock = cmds.polySphere(radius=rng.uniform(0.3, 0.9), name=name + '_rock' + str(i + 1))[0]
                place(rock, x, 0.2, z)
    else:
        raise ValueError('Error: unknown scene type ' + scene_type)

    group = str(cmds.group(*parts, name=name))
    return {'success': True, 'name': group, 'scene_type': scene_type, 'object_count': len(parts)}`
