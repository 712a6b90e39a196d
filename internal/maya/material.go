package maya

import (
	"github.com/danmuck/mayactl/internal/command"
	"github.com/danmuck/mayactl/internal/tools"
)

var materialTypes = []string{
	"lambert", "phong", "blinn", "metal", "wood", "marble",
	"chrome", "glass", "brushed_metal", "car_paint",
}

func materialSpecs() []tools.Spec {
	return []tools.Spec{
		{
			Name:        "create_material",
			Description: "Create a material and optionally assign it to an object. Color is [R, G, B] in 0-1.",
			Args: []command.ArgSpec{
				{Name: "material_type", Kind: command.KindEnum, Required: true, Enum: materialTypes, Help: "Material type to create"},
				{Name: "name", Kind: command.KindString, Help: "Name for the new material"},
				{Name: "color", Kind: command.KindVec3, Default: []float64{0.5, 0.5, 0.5}, Help: "Base color [r, g, b]"},
				{Name: "parameters", Kind: command.KindMap, Help: "Material-specific settings, e.g. {'reflectivity': 0.5}"},
				{Name: "assign_to", Kind: command.KindString, Help: "Object to assign the material to"},
			},
			Source: createMaterialSource,
		},
	}
}

const createMaterialSource = `def create_material(material_type, name=None, color=None, parameters=None, assign_to=None):
    import maya.cmds as cmds
    if color is None:
        color = [0.5, 0.5, 0.5]

    shaders = {
        'lambert': 'lambert', 'phong': 'phong', 'blinn': 'blinn',
        'metal': 'blinn', 'wood': 'lambert', 'marble': 'lambert',
        'chrome': 'blinn', 'glass': 'phong', 'brushed_metal': 'anisotropic',
        'car_paint': 'blinn',
    }
    if material_type not in shaders:
        raise ValueError('Error: unknown material type ' + material_type)

    if not name:
        name = material_type + '_material'
    shader = cmds.shadingNode(shaders[material_type], asShader=True, name=name)
    cmds.setAttr(shader + '.color', color[0], color[1], color[2], type='double3')

    presets = {
        'metal': {'specularColor': [0.9, 0.9, 0.9], 'eccentricity': 0.1},
        'chrome': {'specularColor': [1.0, 1.0, 1.0], 'reflectivity': 0.9},
        'glass': {'transparency': [0.9, 0.9, 0.9], 'reflectivity': 0.5},
        'car_paint': {'specularColor': [1.0, 1.0, 1.0], 'eccentricity': 0.05},
    }
    settings = dict(presets.get(material_type, {}))
    if parameters:
        settings.update(parameters)
    for attr, value in settings.items():
        if not cmds.attributeQuery(attr, node=shader, exists=True):
            continue
        if isinstance(value, (list, tuple)) and len(value) == 3:
            cmds.setAttr(shader + '.' + attr, value[0], value[1], value[2], type='double3')
        else:
            cmds.setAttr(shader + '.' + attr, value)

    shading_group = cmds.sets(renderable=True, noSurfaceShader=True, empty=True, name=shader + 'SG')
    cmds.connectAttr(shader + '.outColor', shading_group + '.surfaceShader', force=True)

    assigned = None
    if assign_to:
        if not cmds.objExists(assign_to):
            raise ValueError('Error: ' + assign_to + ' does not exist in the scene')
        cmds.sets(assign_to, edit=True, forceElement=shading_group)
        assigned = assign_to
    return {'success': True, 'name': str(shader), 'material_type': material_type, 'assigned_to': assigned}`
