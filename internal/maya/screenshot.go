package maya

import (
	"fmt"

	"github.com/danmuck/mayactl/internal/command"
	"github.com/danmuck/mayactl/internal/reply"
	"github.com/danmuck/mayactl/internal/tools"
)

func screenshotSpecs() []tools.Spec {
	return []tools.Spec{
		{
			Name:        "get_viewport_screenshot",
			Description: "Capture the active 3D viewport as a PNG image.",
			Args: []command.ArgSpec{
				{Name: "max_size", Kind: command.KindInt, Default: 800, Help: "Largest dimension in pixels"},
			},
			Source: viewportScreenshotSource,
			Decode: decodeImageEnvelope,
		},
	}
}

// decodeImageEnvelope unwraps the host's base64 image envelope into an Image
// result. Failures arrive as _mcp_error bodies and never reach this decoder.
func decodeImageEnvelope(p reply.Payload) (any, error) {
	value, err := p.AsJSON()
	if err != nil {
		return nil, err
	}
	body, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected image envelope, got %T", reply.ErrDecode, value)
	}
	data, ok := body["_mcp_image_data"].(string)
	if !ok || data == "" {
		return nil, fmt.Errorf("%w: image envelope has no image data", reply.ErrDecode)
	}
	format, _ := body["_mcp_image_format"].(string)
	if format == "" {
		format = "png"
	}
	return tools.Image{MimeType: "image/" + format, Data: data}, nil
}

const viewportScreenshotSource = `def get_viewport_screenshot(max_size=800):
    import os
    import base64
    import tempfile
    import maya.cmds as cmds
    panel = cmds.getPanel(withFocus=True)
    if not panel or cmds.getPanel(typeOf=panel) != 'modelPanel':
        panels = cmds.getPanel(type='modelPanel')
        if not panels:
            return {'_mcp_error': True, 'message': 'No active 3D viewport found'}
        panel = panels[0]

    temp_dir = tempfile.gettempdir().replace(chr(92), '/')
    target = temp_dir + '/maya_screenshot_' + str(os.getpid()) + '.png'
    try:
        cmds.playblast(format='image', filename=target,
                       frame=cmds.currentTime(query=True),
                       viewer=False, showOrnaments=False,
                       percent=100, compression='png', quality=100,
                       widthHeight=[max_size, max_size], forceOverwrite=True)
    except Exception as e:
        return {'_mcp_error': True, 'message': 'Failed to capture screenshot: ' + str(e)}

    actual = target if os.path.exists(target) else None
    if actual is None:
        base = os.path.splitext(os.path.basename(target))[0]
        for entry in os.listdir(temp_dir):
            if entry.startswith(base) and entry.endswith('.png'):
                actual = temp_dir + '/' + entry
                break
    if actual is None:
        return {'_mcp_error': True, 'message': 'Screenshot file was not created'}

    with open(actual, 'rb') as f:
        image_bytes = f.read()
    try:
        os.remove(actual)
    except OSError:
        pass
    return {
        '_mcp_image_data': base64.b64encode(image_bytes).decode('utf-8'),
        '_mcp_image_format': 'png',
        '_mcp_image_type': 'base64',
    }`
