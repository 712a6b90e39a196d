package maya

import (
	"github.com/danmuck/mayactl/internal/command"
	"github.com/danmuck/mayactl/internal/tools"
)

var objectTypes = []string{
	"cube", "cone", "sphere", "cylinder",
	"camera", "spotLight", "pointLight", "directionalLight",
}

func objectSpecs() []tools.Spec {
	return []tools.Spec{
		{
			Name:        "create_object",
			Description: "Create an object in the scene. Rotate values are in degrees.",
			Args: []command.ArgSpec{
				{Name: "name", Kind: command.KindString, Required: true, Help: "Name for the new object"},
				{Name: "object_type", Kind: command.KindEnum, Required: true, Enum: objectTypes, Help: "Type of object to create"},
				{Name: "translate", Kind: command.KindVec3, Default: []float64{0, 0, 0}, Help: "World-space position [x, y, z]"},
				{Name: "rotate", Kind: command.KindVec3, Default: []float64{0, 0, 0}, Help: "Rotation [x, y, z] in degrees"},
			},
			Source: createObjectSource,
		},
		{
			Name:        "delete_object",
			Description: "Delete one or more objects from the scene.",
			Args: []command.ArgSpec{
				{Name: "object_names", Kind: command.KindList, Required: true, Help: "Names of the objects to delete"},
			},
			Source: deleteObjectSource,
		},
		{
			Name:        "duplicate_object",
			Description: "Duplicate an object, optionally renaming and transforming the copy.",
			Args: []command.ArgSpec{
				{Name: "object_name", Kind: command.KindString, Required: true, Help: "Object to duplicate"},
				{Name: "new_name", Kind: command.KindString, Help: "Name for the duplicate"},
				{Name: "translate", Kind: command.KindVec3, Help: "Position for the duplicate [x, y, z]"},
				{Name: "rotate", Kind: command.KindVec3, Help: "Rotation for the duplicate [x, y, z] in degrees"},
				{Name: "scale", Kind: command.KindVec3, Help: "Scale for the duplicate [x, y, z]"},
				{Name: "instance", Kind: command.KindBool, Default: false, Help: "Create an instance instead of a copy"},
			},
			Source: duplicateObjectSource,
		},
		{
			Name:        "rename_object",
			Description: "Rename an object in the scene.",
			Args: []command.ArgSpec{
				{Name: "object_name", Kind: command.KindString, Required: true, Help: "Current object name"},
				{Name: "new_name", Kind: command.KindString, Required: true, Help: "New object name"},
			},
			Source: renameObjectSource,
		},
		{
			Name:        "set_object_transform_attributes",
			Description: "Set an object's transform attributes. Only supplied attributes change; rotate values are in degrees.",
			Args: []command.ArgSpec{
				{Name: "object_name", Kind: command.KindString, Required: true, Help: "Object to transform"},
				{Name: "translate", Kind: command.KindVec3, Help: "Translation [x, y, z]"},
				{Name: "rotate", Kind: command.KindVec3, Help: "Rotation [x, y, z] in degrees"},
				{Name: "scale", Kind: command.KindVec3, Help: "Scale [x, y, z]"},
			},
			Source: setObjectTransformSource,
		},
		{
			Name:        "get_object_attributes",
			Description: "Get the attributes of an object. A transform parenting a shape includes the shape's attributes.",
			Args: []command.ArgSpec{
				{Name: "object_name", Kind: command.KindString, Required: true, Help: "Object to inspect"},
			},
			Source: getObjectAttributesSource,
		},
		{
			Name:        "set_object_attribute",
			Description: "Set one attribute on an object, falling back to its child shape when the transform lacks it.",
			Args: []command.ArgSpec{
				{Name: "object_name", Kind: command.KindString, Required: true, Help: "Object to modify"},
				{Name: "attribute_name", Kind: command.KindString, Required: true, Help: "Attribute to set"},
				{Name: "attribute_value", Kind: command.KindList, Required: true, Help: "Value, as a one-element list or a 3-component vector"},
			},
			Source: setObjectAttributeSource,
		},
		{
			Name:        "list_objects_by_type",
			Description: "List objects in the scene, optionally filtered by cameras, lights, materials, or shapes.",
			Args: []command.ArgSpec{
				{Name: "filter_by", Kind: command.KindString, Help: "Filter such as cameras, lights, materials, or shapes"},
			},
			Source: listObjectsByTypeSource,
		},
	}
}

const createObjectSource = `def create_object(name, object_type, translate, rotate):
    import maya.cmds as cmds
    creators = {
        'cube': cmds.polyCube,
        'cone': cmds.polyCone,
        'sphere': cmds.polySphere,
        'cylinder': cmds.polyCylinder,
        'camera': cmds.camera,
        'spotLight': cmds.spotLight,
        'pointLight': cmds.pointLight,
        'directionalLight': cmds.directionalLight,
    }
    if object_type not in creators:
        raise ValueError('Error: unknown object type ' + object_type)
    obj = creators[object_type](name=name)
    if not isinstance(obj, (list, tuple)):
        obj = [obj]
    node = str(obj[0])
    cmds.setAttr(node + '.translate', translate[0], translate[1], translate[2], type='double3')
    cmds.setAttr(node + '.rotate', rotate[0], rotate[1], rotate[2], type='double3')
    return {'success': True, 'name': node, 'object_type': object_type}`

const deleteObjectSource = `def delete_object(object_names):
    import maya.cmds as cmds
    if not object_names:
        raise ValueError('Error: object_names list cannot be empty')
    deleted = []
    failed = []
    for obj in object_names:
        if not cmds.objExists(obj):
            failed.append({'name': obj, 'error': 'Object does not exist'})
            continue
        try:
            cmds.delete(obj)
            deleted.append(obj)
        except Exception as e:
            failed.append({'name': obj, 'error': str(e)})
    return {'success': len(failed) == 0, 'deleted': deleted, 'failed': failed}`

const duplicateObjectSource = `def duplicate_object(object_name, new_name=None, translate=None, rotate=None, scale=None, instance=False):
    import maya.cmds as cmds
    if not cmds.objExists(object_name):
        raise ValueError('Error: ' + object_name + ' does not exist in the scene')
    kwargs = {'instanceLeaf': True} if instance else {}
    if new_name:
        kwargs['name'] = new_name
    dup = cmds.duplicate(object_name, **kwargs)
    node = str(dup[0])
    if translate is not None:
        cmds.setAttr(node + '.translate', translate[0], translate[1], translate[2], type='double3')
    if rotate is not None:
        cmds.setAttr(node + '.rotate', rotate[0], rotate[1], rotate[2], type='double3')
    if scale is not None:
        cmds.setAttr(node + '.scale', scale[0], scale[1], scale[2], type='double3')
    return {'success': True, 'name': node, 'instance': bool(instance)}`

const renameObjectSource = `def rename_object(object_name, new_name):
    import maya.cmds as cmds
    if not cmds.objExists(object_name):
        raise ValueError('Error: ' + object_name + ' does not exist in the scene')
    if cmds.objExists(new_name):
        raise ValueError('Error: an object named ' + new_name + ' already exists in the scene')
    renamed = cmds.rename(object_name, new_name)
    return {'success': True, 'name': str(renamed)}`

const setObjectTransformSource = `def set_object_transform_attributes(object_name, translate=None, rotate=None, scale=None):
    import maya.cmds as cmds
    if not cmds.objExists(object_name):
        raise ValueError('Error: ' + object_name + ' does not exist in the scene')
    changed = []
    for attr, vec in (('translate', translate), ('rotate', rotate), ('scale', scale)):
        if vec is None:
            continue
        if not cmds.attributeQuery(attr, node=object_name, exists=True):
            raise ValueError('Error: ' + object_name + ' has no ' + attr + ' attribute')
        cmds.setAttr(object_name + '.' + attr, vec[0], vec[1], vec[2], type='double3')
        changed.append(attr)
    return {'success': True, 'name': object_name, 'changed': changed}`

const getObjectAttributesSource = `def get_object_attributes(object_name):
    import maya.cmds as cmds
    if not cmds.objExists(object_name):
        return {'success': False, 'message': 'Error: ' + object_name + ' does not exist in the scene'}

    def collect(node, attrs, results):
        for attr in attrs:
            if attr in results or attr[-1] in ('X', 'Y', 'Z', 'R', 'G', 'B', 'A'):
                continue
            try:
                value = cmds.getAttr(node + '.' + attr)
                if isinstance(value, list) and len(value) == 1:
                    value = value[0]
                results[attr] = value
            except Exception:
                pass

    results = {}
    if cmds.objectType(object_name) == 'transform':
        collect(object_name, ['translate', 'rotate', 'scale', 'visibility'], results)
        shapes = cmds.listRelatives(object_name, shapes=True) or []
        if shapes:
            collect(shapes[0], cmds.listAttr(shapes[0], keyable=True) or [], results)
    else:
        collect(object_name, cmds.listAttr(object_name, keyable=True) or [], results)
    return {'success': True, 'name': object_name, 'attributes': results}`

const setObjectAttributeSource = `def set_object_attribute(object_name, attribute_name, attribute_value):
    import maya.cmds as cmds
    if not cmds.objExists(object_name):
        raise ValueError('Error: ' + object_name + ' does not exist in the scene')
    node = object_name
    if not cmds.attributeQuery(attribute_name, node=node, exists=True):
        shapes = cmds.listRelatives(object_name, shapes=True) or []
        if not (shapes and cmds.attributeQuery(attribute_name, node=shapes[0], exists=True)):
            raise ValueError('Error: ' + object_name + ' has no attribute ' + attribute_name)
        node = shapes[0]
    if len(attribute_value) == 3:
        cmds.setAttr(node + '.' + attribute_name,
                     float(attribute_value[0]), float(attribute_value[1]), float(attribute_value[2]),
                     type='double3')
    elif len(attribute_value) == 1:
        value = attribute_value[0]
        if isinstance(value, str):
            cmds.setAttr(node + '.' + attribute_name, value, type='string')
        else:
            cmds.setAttr(node + '.' + attribute_name, value)
    else:
        raise ValueError('Error: attribute_value must hold 1 value or 3 vector components')
    return {'success': True, 'name': node, 'attribute': attribute_name}`

const listObjectsByTypeSource = `def list_objects_by_type(filter_by=None):
    import maya.cmds as cmds
    if filter_by in (None, '', 'object', 'objects', 'all', 'null'):
        filter_by = 'dag'
    return cmds.ls(**{filter_by: True})`
