package maya

import (
	"github.com/danmuck/mayactl/internal/command"
	"github.com/danmuck/mayactl/internal/tools"
)

var meshOperations = []string{
	"extrude", "bevel", "subdivide", "smooth", "boolean", "combine", "bridge", "split",
}

var organizeOperations = []string{
	"group", "parent", "layout", "center_pivot", "align", "distribute",
}

func meshSpecs() []tools.Spec {
	return []tools.Spec{
		{
			Name:        "mesh_operations",
			Description: "Run a polygon modeling operation on a mesh. Component operations take select_components like ['f[0]', 'f[2:5]'].",
			Args: []command.ArgSpec{
				{Name: "object_name", Kind: command.KindString, Required: true, Help: "Mesh to operate on"},
				{Name: "operation", Kind: command.KindEnum, Required: true, Enum: meshOperations, Help: "Polygon operation"},
				{Name: "parameters", Kind: command.KindMap, Help: "Operation settings, e.g. {'distance': 2.0, 'divisions': 1}"},
				{Name: "select_components", Kind: command.KindList, Help: "Component selections relative to the object, e.g. ['f[0]']"},
			},
			Source: meshOperationsSource,
		},
		{
			Name:        "organize_objects",
			Description: "Organize scene objects: group, parent, layout in a grid, center pivots, align, or distribute.",
			Args: []command.ArgSpec{
				{Name: "operation", Kind: command.KindEnum, Required: true, Enum: organizeOperations, Help: "Organization operation"},
				{Name: "objects", Kind: command.KindList, Required: true, Help: "Objects to organize; parent takes [children..., parent]"},
				{Name: "name", Kind: command.KindString, Help: "Group name for the group operation"},
				{Name: "parameters", Kind: command.KindMap, Help: "Operation settings, e.g. {'axis': 'x', 'spacing': 3.0}"},
			},
			Source: organizeObjectsSource,
		},
	}
}

const meshOperationsSource = `def mesh_operations(object_name, operation, parameters=None, select_components=None):
    import maya.cmds as cmds
    if parameters is None:
        parameters = {}
    if not cmds.objExists(object_name):
        raise ValueError('Error: ' + object_name + ' does not exist in the scene')

    if select_components:
        cmds.select([object_name + '.' + c for c in select_components], replace=True)
    else:
        cmds.select(object_name, replace=True)

    if operation == 'extrude':
        result = cmds.polyExtrudeFacet(localTranslateZ=parameters.get('distance', 1.0),
                                       offset=parameters.get('offset', 0.0),
                                       divisions=parameters.get('divisions', 1))
    elif operation == 'bevel':
        result = cmds.polyBevel3(offset=parameters.get('offset', 0.3),
                                 segments=parameters.get('segments', 1),
                                 depth=parameters.get('depth', 1.0))
    elif operation == 'subdivide':
        result = cmds.polySubdivideFacet(divisions=parameters.get('divisions', 1))
    elif operation == 'smooth':
        result = cmds.polySmooth(object_name, divisions=parameters.get('divisions', 1),
                                 continuity=parameters.get('continuity', 1.0))
    elif operation == 'boolean':
        other = parameters.get('target')
        if not other or not cmds.objExists(other):
            raise ValueError('Error: boolean requires an existing target object in parameters')
        kinds = {'union': 1, 'difference': 2, 'intersection': 3}
        kind = kinds.get(parameters.get('boolean_type', 'union'))
        if kind is None:
            raise ValueError('Error: boolean_type must be union, difference, or intersection')
        result = cmds.polyBoolOp(object_name, other, op=kind)
    elif operation == 'combine':
        others = parameters.get('targets', [])
        missing = [o for o in others if not cmds.objExists(o)]
        if not others or missing:
            raise ValueError('Error: combine requires existing targets in parameters')
        result = cmds.polyUnite([object_name] + others)
    elif operation == 'bridge':
        result = cmds.polyBridgeEdge(divisions=parameters.get('divisions', 0))
    elif operation == 'split':
        cut = cmds.polyCut(object_name,
                           cutPlaneCenter=parameters.get('plane_center', [0.0, 0.0, 0.0]),
                           cutPlaneRotate=parameters.get('plane_rotate', [0.0, 0.0, 0.0]),
                           extractFaces=parameters.get('extract', False))
        result = cut
    else:
        raise ValueError('Error: unknown operation ' + operation)

    cmds.select(clear=True)
    names = [str(r) for r in result] if isinstance(result, (list, tuple)) else [str(result)]
    return {'success': True, 'object_name': object_name, 'operation': operation, 'nodes': names}`

const organizeObjectsSource = `def organize_objects(operation, objects, name=None, parameters=None):
    import math
    import maya.cmds as cmds
    if parameters is None:
        parameters = {}
    missing = [o for o in objects if not cmds.objExists(o)]
    if missing:
        raise ValueError('Error: objects do not exist in the scene: ' + ', '.join(missing))

    if operation == 'group':
        group = str(cmds.group(*objects, name=name or 'group1'))
        return {'success': True, 'operation': operation, 'name': group, 'objects': objects}
    elif operation == 'parent':
        if len(objects) < 2:
            raise ValueError('Error: parent requires at least one child and a parent')
        cmds.parent(objects[:-1], objects[-1])
        return {'success': True, 'operation': operation, 'parent': objects[-1], 'children': objects[:-1]}
    elif operation == 'layout':
        spacing = parameters.get('spacing', 3.0)
        columns = parameters.get('columns', int(math.ceil(math.sqrt(len(objects)))))
        for i, obj in enumerate(objects):
            row, col = divmod(i, columns)
            cmds.setAttr(obj + '.translate', col * spacing, 0.0, row * spacing, type='double3')
    elif operation == 'center_pivot':
        for obj in objects:
            cmds.xform(obj, centerPivots=True)
    elif operation == 'align':
        axis = parameters.get('axis', 'x')
        if axis not in ('x', 'y', 'z'):
            raise ValueError('Error: axis must be x, y, or z')
        index = 'xyz'.index(axis)
        anchor = cmds.xform(objects[0], query=True, worldSpace=True, translation=True)
        for obj in objects[1:]:
            pos = cmds.xform(obj, query=True, worldSpace=True, translation=True)
            pos[index] = anchor[index]
            cmds.xform(obj, worldSpace=True, translation=pos)
    elif operation == 'distribute':
        axis = parameters.get('axis', 'x')
        if axis not in ('x', 'y', 'z'):
            raise ValueError('Error: axis must be x, y, or z')
        index = 'xyz'.index(axis)
        spacing = parameters.get('spacing', 3.0)
        start = cmds.xform(objects[0], query=True, worldSpace=True, translation=True)[index]
        for i, obj in enumerate(objects):
            pos = cmds.xform(obj, query=True, worldSpace=True, translation=True)
            pos[index] = start + i * spacing
            cmds.xform(obj, worldSpace=True, translation=pos)
    else:
        raise ValueError('Error: unknown operation ' + operation)

    return {'success': True, 'operation': operation, 'objects': objects}`
