package maya

import (
	"github.com/danmuck/mayactl/internal/command"
	"github.com/danmuck/mayactl/internal/tools"
)

func sceneSpecs() []tools.Spec {
	return []tools.Spec{
		{
			Name:        "scene_new",
			Description: "Create a new scene. Use force to discard unsaved changes.",
			Args: []command.ArgSpec{
				{Name: "force", Kind: command.KindBool, Default: false, Help: "Discard unsaved changes"},
			},
			Source: sceneNewSource,
		},
		{
			Name:        "scene_open",
			Description: "Open a scene file, or reference it into the current scene under a namespace.",
			Args: []command.ArgSpec{
				{Name: "filename", Kind: command.KindString, Required: true, Help: "Path of the scene file"},
				{Name: "namespace", Kind: command.KindString, Help: "Reference the file under this namespace"},
			},
			Source: sceneOpenSource,
		},
		{
			Name:        "scene_save",
			Description: "Save the current scene, optionally to a new file name.",
			Args: []command.ArgSpec{
				{Name: "filename", Kind: command.KindString, Help: "Target path; defaults to the current scene file"},
			},
			Source: sceneSaveSource,
		},
		{
			Name:        "get_scene_info",
			Description: "Get an overview of the current scene: objects, cameras, lights, materials, and timeline settings.",
			Source:      getSceneInfoSource,
		},
		{
			Name:        "select_object",
			Description: "Select an object in the scene.",
			Args: []command.ArgSpec{
				{Name: "object_name", Kind: command.KindString, Required: true, Help: "Object to select"},
			},
			Source: selectObjectSource,
		},
		{
			Name:        "execute_code",
			Description: "Execute arbitrary Python code inside the host with Maya modules in scope. Stdout is captured and returned.",
			Args: []command.ArgSpec{
				{Name: "code", Kind: command.KindString, Required: true, Help: "Python code to execute"},
			},
			Source: executeCodeSource,
		},
	}
}

const sceneNewSource = `def scene_new(force):
    import maya.cmds as cmds
    try:
        cmds.file(new=True, force=force)
        cmds.file(modified=False)
    except RuntimeError:
        if not force:
            raise RuntimeError('Unable to create a new scene because of unsaved changes. Use force to force a new scene.')
        raise RuntimeError('Unable to create a new scene')
    return {'success': True}`

const sceneOpenSource = `def scene_open(filename, namespace=None):
    import os
    import maya.cmds as cmds
    if not os.path.exists(filename):
        raise ValueError('Error: ' + filename + ' does not exist')
    if namespace:
        cmds.file(filename, reference=True, namespace=namespace)
    else:
        cmds.file(filename, open=True, force=True)
    return {'success': True, 'filename': filename}`

const sceneSaveSource = `def scene_save(filename=None):
    import os
    import maya.cmds as cmds
    if not filename:
        filename = cmds.file(query=True, sceneName=True)
        if not filename:
            raise RuntimeError('Error: the scene has no file name, provide filename')
    _, ext = os.path.splitext(filename)
    if ext == '.mb':
        file_type = 'mayabinary'
    elif ext == '.ma':
        file_type = 'mayaascii'
    elif not ext:
        file_type = cmds.file(query=True, type=True)
        if isinstance(file_type, list):
            if len(file_type) != 1:
                raise RuntimeError('Unable to determine the file type of the current scene')
            file_type = file_type[0]
        filename += '.mb' if file_type == 'mayabinary' else '.ma'
    else:
        raise ValueError('Error: unable to save a scene in the file format ' + ext)
    cmds.file(rename=filename)
    cmds.file(save=True, type=file_type)
    return {'success': True, 'filename': filename}`

const getSceneInfoSource = `def get_scene_info():
    import maya.cmds as cmds
    scene_name = cmds.file(query=True, sceneName=True) or 'Untitled'
    objects = []
    for obj in cmds.ls(type='transform') or []:
        try:
            shapes = cmds.listRelatives(obj, shapes=True) or []
            shape_type = cmds.objectType(shapes[0]) if shapes else None
            objects.append({
                'name': obj,
                'type': shape_type or cmds.objectType(obj),
                'position': cmds.xform(obj, query=True, worldSpace=True, translation=True),
                'rotation': cmds.xform(obj, query=True, worldSpace=True, rotation=True),
                'scale': cmds.xform(obj, query=True, relative=True, scale=True),
                'visible': bool(cmds.getAttr(obj + '.visibility')),
            })
        except Exception:
            pass
    return {
        'success': True,
        'scene_name': scene_name,
        'object_count': len(objects),
        'objects': objects,
        'cameras': cmds.ls(cameras=True) or [],
        'lights': cmds.ls(lights=True) or [],
        'materials': cmds.ls(materials=True) or [],
        'timeline': {
            'start_frame': cmds.playbackOptions(query=True, minTime=True),
            'end_frame': cmds.playbackOptions(query=True, maxTime=True),
            'current_frame': cmds.currentTime(query=True),
            'fps': cmds.currentUnit(query=True, time=True),
        },
    }`

const selectObjectSource = `def select_object(object_name):
    import maya.cmds as cmds
    try:
        cmds.select(object_name)
    except Exception:
        raise ValueError('Error: ' + object_name + ' does not exist in the scene')
    return {'success': True}`

const executeCodeSource = `def execute_code(code):
    import io
    import contextlib
    import traceback
    import maya.cmds as cmds
    buffer = io.StringIO()
    namespace = {'maya': __import__('maya'), 'cmds': cmds}
    try:
        namespace['mel'] = __import__('maya.mel').mel
    except Exception:
        pass
    try:
        with contextlib.redirect_stdout(buffer):
            exec(code, namespace)
    except Exception as e:
        return {
            'success': False,
            'result': buffer.getvalue(),
            'error': str(e),
            'traceback': traceback.format_exc(),
        }
    output = buffer.getvalue()
    return {'success': True, 'result': output if output else 'Code executed successfully (no output)'}`
