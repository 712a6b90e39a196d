package maya

import (
	"github.com/danmuck/mayactl/internal/command"
	"github.com/danmuck/mayactl/internal/tools"
)

var importFormats = []string{"fbx", "obj", "usd", "usda", "usdc", "abc"}

func modelIOSpecs() []tools.Spec {
	return []tools.Spec{
		{
			Name:        "import_model",
			Description: "Import a model file (fbx, obj, usd, usda, usdc, abc) into the scene. Format is inferred from the extension unless given.",
			Args: []command.ArgSpec{
				{Name: "filepath", Kind: command.KindString, Required: true, Help: "Path of the file to import"},
				{Name: "file_format", Kind: command.KindString, Help: "Explicit format; defaults to the file extension"},
				{Name: "namespace", Kind: command.KindString, Help: "Import under this namespace to avoid name clashes"},
				{Name: "group_name", Kind: command.KindString, Help: "Parent imported objects under this group"},
			},
			Source: importModelSource,
		},
		{
			Name:        "export_model",
			Description: "Export objects to a file. Formats: fbx, obj, usd, usda, usdc, abc, dae, ma, mb. Pass object names, or set export_selected or export_all.",
			Args: []command.ArgSpec{
				{Name: "object_names", Kind: command.KindList, Help: "Objects to export; may be empty with export_selected or export_all"},
				{Name: "filepath", Kind: command.KindString, Required: true, Help: "Target path including extension"},
				{Name: "file_format", Kind: command.KindString, Default: "fbx", Help: "Export format"},
				{Name: "export_selected", Kind: command.KindBool, Default: false, Help: "Export the current selection instead of object_names"},
				{Name: "export_all", Kind: command.KindBool, Default: false, Help: "Export every scene object"},
			},
			Source: exportModelSource,
		},
	}
}

const importModelSource = `def import_model(filepath, file_format=None, namespace=None, group_name=None):
    import os
    import maya.cmds as cmds
    filepath = filepath.replace(chr(92), '/')
    if not os.path.exists(filepath):
        raise ValueError('Error: ' + filepath + ' does not exist')
    format_map = {
        'fbx': 'FBX',
        'obj': 'OBJ',
        'usd': 'USD Import',
        'usda': 'USD Import',
        'usdc': 'USD Import',
        'abc': 'Alembic',
    }
    if file_format is None:
        _, ext = os.path.splitext(filepath)
        file_format = ext.lower().lstrip('.')
    else:
        file_format = file_format.lower()
    if file_format not in format_map:
        raise ValueError('Error: unsupported import format ' + file_format + '. Supported: ' + ', '.join(sorted(format_map)))

    before = set(cmds.ls(type='transform') or [])
    kwargs = {'i': True, 'type': format_map[file_format], 'ignoreVersion': True,
              'mergeNamespacesOnClash': True, 'options': 'v=0;'}
    if namespace:
        kwargs['namespace'] = namespace
    cmds.file(filepath, **kwargs)
    imported = sorted(set(cmds.ls(type='transform') or []) - before)

    group = None
    if group_name and imported:
        if cmds.objExists(group_name):
            cmds.parent(imported, group_name)
            group = group_name
        else:
            group = str(cmds.group(imported, name=group_name, world=True))

    bbox_min = bbox_max = None
    for obj in imported:
        try:
            bb = cmds.xform(obj, query=True, worldSpace=True, boundingBox=True)
        except Exception:
            continue
        lo, hi = [bb[0], bb[2], bb[4]], [bb[1], bb[3], bb[5]]
        if bbox_min is None:
            bbox_min, bbox_max = lo, hi
        else:
            bbox_min = [min(a, b) for a, b in zip(bbox_min, lo)]
            bbox_max = [max(a, b) for a, b in zip(bbox_max, hi)]

    result = {
        'success': True,
        'filepath': filepath,
        'format': file_format,
        'namespace': namespace,
        'group': group,
        'imported_objects': imported,
        'object_count': len(imported),
    }
    if bbox_min is not None:
        result['bounding_box'] = {'min': bbox_min, 'max': bbox_max}
        result['dimensions'] = [hi - lo for lo, hi in zip(bbox_min, bbox_max)]
    return result`

const exportModelSource = `def export_model(object_names=None, filepath=None, file_format=None, export_selected=None, export_all=None):
    import os
    import maya.cmds as cmds
    filepath = filepath.replace(chr(92), '/')
    directory = os.path.dirname(filepath)
    if directory and not os.path.exists(directory):
        os.makedirs(directory)

    if export_all:
        targets = [o for o in (cmds.ls(type='transform') or [])
                   if o not in ('front', 'side', 'top', 'persp')]
    elif export_selected:
        selected = cmds.ls(selection=True) or []
        targets = [o for o in selected if cmds.objectType(o) == 'transform']
    else:
        if not object_names:
            raise ValueError('Error: provide object_names, or set export_selected or export_all')
        missing = [o for o in object_names if not cmds.objExists(o)]
        if missing:
            raise ValueError('Error: objects do not exist in the scene: ' + ', '.join(missing))
        targets = list(object_names)
    if not targets:
        raise ValueError('Error: no objects to export')

    file_format = file_format.lower()
    type_map = {
        'fbx': ('FBX export', 'v=0;'),
        'obj': ('OBJexport', 'groups=1;ptgroups=1;materials=1;smoothing=1;normals=1'),
        'usd': ('USD Export', 'exportUVs=1;exportColorSets=1;exportDisplayColor=1'),
        'usda': ('USD Export', 'exportUVs=1;exportColorSets=1;exportDisplayColor=1;defaultUSDFormat=usda'),
        'usdc': ('USD Export', 'exportUVs=1;exportColorSets=1;exportDisplayColor=1;defaultUSDFormat=usdc'),
        'abc': ('Alembic', '-frameRange 1 1 -dataFormat ogawa'),
        'dae': ('DAE_FBX export', ''),
        'ma': ('mayaAscii', ''),
        'mb': ('mayaBinary', ''),
    }
    if file_format not in type_map:
        raise ValueError('Error: unsupported export format ' + file_format + '. Supported: ' + ', '.join(sorted(type_map)))
    maya_type, options = type_map[file_format]

    previous = cmds.ls(selection=True) or []
    cmds.select(targets, replace=True)
    try:
        kwargs = {'force': True, 'type': maya_type, 'exportSelected': True}
        if options:
            kwargs['options'] = options
        cmds.file(filepath, **kwargs)
    finally:
        if previous:
            cmds.select(previous, replace=True)
        else:
            cmds.select(clear=True)

    if not os.path.exists(filepath):
        raise RuntimeError('Export finished but ' + filepath + ' was not created')
    return {
        'success': True,
        'filepath': filepath,
        'format': file_format,
        'exported_objects': targets,
        'object_count': len(targets),
        'file_size_bytes': os.path.getsize(filepath),
    }`
