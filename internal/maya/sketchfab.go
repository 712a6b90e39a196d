package maya

import (
	"github.com/danmuck/mayactl/internal/command"
	"github.com/danmuck/mayactl/internal/tools"
)

// Sketchfab tools run host-side so downloads land directly in the host's
// filesystem and import through its own commands. The API key comes from the
// SKETCHFAB_API_KEY environment variable of the host process unless supplied
// per call.
func sketchfabSpecs() []tools.Spec {
	return []tools.Spec{
		{
			Name:        "search_sketchfab_models",
			Description: "Search Sketchfab for models. Requires a Sketchfab API key.",
			Args: []command.ArgSpec{
				{Name: "query", Kind: command.KindString, Required: true, Help: "Text to search for"},
				{Name: "categories", Kind: command.KindString, Help: "Comma-separated category list"},
				{Name: "count", Kind: command.KindInt, Default: 20, Help: "Maximum results, capped at 100"},
				{Name: "downloadable", Kind: command.KindBool, Default: true, Help: "Only downloadable models"},
				{Name: "api_key", Kind: command.KindString, Help: "Sketchfab API key override"},
			},
			Source: searchSketchfabSource,
		},
		{
			Name:        "download_sketchfab_model",
			Description: "Download a Sketchfab model by UID and import it into the scene, scaled so its largest dimension equals target_size.",
			Args: []command.ArgSpec{
				{Name: "uid", Kind: command.KindString, Required: true, Help: "Model UID from search_sketchfab_models"},
				{Name: "target_size", Kind: command.KindNumber, Default: 1.0, Help: "Largest dimension after import, in scene units"},
				{Name: "api_key", Kind: command.KindString, Help: "Sketchfab API key override"},
			},
			Source: downloadSketchfabSource,
		},
		{
			Name:        "get_sketchfab_model_preview",
			Description: "Fetch the thumbnail image of a Sketchfab model to confirm it before downloading.",
			Args: []command.ArgSpec{
				{Name: "uid", Kind: command.KindString, Required: true, Help: "Model UID from search_sketchfab_models"},
				{Name: "api_key", Kind: command.KindString, Help: "Sketchfab API key override"},
			},
			Source: sketchfabPreviewSource,
			Decode: decodeImageEnvelope,
		},
	}
}

const searchSketchfabSource = `def search_sketchfab_models(query, categories=None, count=20, downloadable=True, api_key=None):
    import os
    import requests
    if not api_key:
        api_key = os.getenv('SKETCHFAB_API_KEY')
    if not api_key:
        return {'success': False, 'error': 'Sketchfab API key is not configured. Set SKETCHFAB_API_KEY or pass api_key.'}
    params = {
        'type': 'models',
        'q': query,
        'count': min(count, 100),
        'downloadable': downloadable,
        'archives_flavours': False,
    }
    if categories:
        params['categories'] = categories
    response = requests.get(
        'https://api.sketchfab.com/v3/search',
        headers={'Authorization': 'Token ' + api_key},
        params=params,
        timeout=30,
    )
    if response.status_code == 401:
        return {'success': False, 'error': 'Authentication failed (401). Check your API key.'}
    if response.status_code != 200:
        return {'success': False, 'error': 'Search failed with status code ' + str(response.status_code)}
    models = []
    for item in response.json().get('results', []):
        models.append({
            'uid': item.get('uid'),
            'name': item.get('name'),
            'description': item.get('description'),
            'face_count': item.get('faceCount'),
            'vertex_count': item.get('vertexCount'),
            'is_downloadable': item.get('isDownloadable'),
        })
    return {'success': True, 'count': len(models), 'models': models}`

const downloadSketchfabSource = `def download_sketchfab_model(uid, target_size=1.0, api_key=None):
    import os
    import shutil
    import tempfile
    import zipfile
    import requests
    import maya.cmds as cmds
    if not api_key:
        api_key = os.getenv('SKETCHFAB_API_KEY')
    if not api_key:
        return {'success': False, 'error': 'Sketchfab API key is not configured. Set SKETCHFAB_API_KEY or pass api_key.'}
    headers = {'Authorization': 'Token ' + api_key}
    response = requests.get('https://api.sketchfab.com/v3/models/' + uid + '/download', headers=headers, timeout=30)
    if response.status_code == 401:
        return {'success': False, 'error': 'Authentication failed (401). Check your API key.'}
    if response.status_code != 200:
        return {'success': False, 'error': 'Download request failed with status code ' + str(response.status_code)}
    data = response.json() or {}

    archive = None
    for flavour in ('gltf', 'source'):
        info = data.get(flavour)
        if info and info.get('url'):
            archive = info
            break
    if archive is None:
        return {'success': False, 'error': 'No downloadable archive available for model ' + uid}

    temp_dir = tempfile.mkdtemp()
    try:
        archive_path = os.path.join(temp_dir, 'model.zip')
        with requests.get(archive['url'], stream=True, timeout=120) as download:
            download.raise_for_status()
            with open(archive_path, 'wb') as out:
                shutil.copyfileobj(download.raw, out)
        with zipfile.ZipFile(archive_path) as zf:
            zf.extractall(temp_dir)

        model_file = None
        for root, _, files in os.walk(temp_dir):
            for f in files:
                if f.lower().endswith(('.fbx', '.obj')):
                    model_file = os.path.join(root, f)
                    break
            if model_file:
                break
        if model_file is None:
            return {'success': False, 'error': 'No FBX or OBJ file found in the downloaded archive'}

        before = set(cmds.ls(assemblies=True))
        cmds.file(model_file, i=True, ignoreVersion=True, mergeNamespacesOnClash=True, namespace=':')
        imported = [n for n in cmds.ls(assemblies=True) if n not in before]
        if not imported:
            return {'success': False, 'error': 'Import produced no new nodes'}

        group = imported[0] if len(imported) == 1 else cmds.group(imported, name='sketchfab_' + uid[:8])
        bbox = cmds.exactWorldBoundingBox(group)
        largest = max(bbox[3] - bbox[0], bbox[4] - bbox[1], bbox[5] - bbox[2])
        if largest > 0:
            factor = float(target_size) / largest
            cmds.scale(factor, factor, factor, group, relative=True)
        return {'success': True, 'name': str(group), 'uid': uid}
    finally:
        shutil.rmtree(temp_dir, ignore_errors=True)`

const sketchfabPreviewSource = `def get_sketchfab_model_preview(uid, api_key=None):
    import os
    import base64
    import requests
    if not api_key:
        api_key = os.getenv('SKETCHFAB_API_KEY')
    if not api_key:
        return {'_mcp_error': True, 'message': 'Sketchfab API key is not configured. Set SKETCHFAB_API_KEY or pass api_key.'}
    headers = {'Authorization': 'Token ' + api_key}
    response = requests.get('https://api.sketchfab.com/v3/models/' + uid, headers=headers, timeout=30)
    if response.status_code == 401:
        return {'_mcp_error': True, 'message': 'Authentication failed (401). Check your API key.'}
    if response.status_code == 404:
        return {'_mcp_error': True, 'message': 'Model not found: ' + uid}
    if response.status_code != 200:
        return {'_mcp_error': True, 'message': 'Failed to get model info: ' + str(response.status_code)}
    data = response.json()
    thumbnails = data.get('thumbnails', {}).get('images', [])
    if not thumbnails:
        return {'_mcp_error': True, 'message': 'No thumbnail available for this model'}

    selected = None
    for thumb in thumbnails:
        if 400 <= thumb.get('width', 0) <= 800:
            selected = thumb
            break
    if selected is None:
        selected = thumbnails[0]
    url = selected.get('url')
    if not url:
        return {'_mcp_error': True, 'message': 'Thumbnail URL not found'}

    image = requests.get(url, timeout=30)
    if image.status_code != 200:
        return {'_mcp_error': True, 'message': 'Failed to download thumbnail: ' + str(image.status_code)}
    content_type = image.headers.get('Content-Type', '')
    img_format = 'png' if 'png' in content_type or url.endswith('.png') else 'jpeg'
    return {
        '_mcp_image_data': base64.b64encode(image.content).decode('ascii'),
        '_mcp_image_format': img_format,
        '_mcp_image_type': 'base64',
        'model_name': data.get('name', 'Unknown'),
        'author': data.get('user', {}).get('username', 'Unknown'),
        'uid': uid,
    }`
