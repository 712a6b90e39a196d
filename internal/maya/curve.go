package maya

import (
	"github.com/danmuck/mayactl/internal/command"
	"github.com/danmuck/mayactl/internal/tools"
)

var curveTypes = []string{
	"custom", "line", "circle", "square", "rectangle",
	"spiral", "helix", "arc", "star", "gear",
}

var curveOperations = []string{
	"extrude", "loft", "revolve", "sweep", "planar", "bevel",
}

func curveSpecs() []tools.Spec {
	return []tools.Spec{
		{
			Name:        "create_curve",
			Description: "Create a NURBS curve. Custom curves need points; parametric types take settings like {'radius': 5.0}.",
			Args: []command.ArgSpec{
				{Name: "curve_type", Kind: command.KindEnum, Required: true, Enum: curveTypes, Help: "Curve shape to create"},
				{Name: "name", Kind: command.KindString, Help: "Name for the new curve"},
				{Name: "points", Kind: command.KindList, Help: "Explicit curve points [[x, y, z], ...]"},
				{Name: "parameters", Kind: command.KindMap, Help: "Type-specific settings, e.g. {'radius': 5.0, 'turns': 3}"},
				{Name: "translate", Kind: command.KindVec3, Default: []float64{0, 0, 0}, Help: "Position [x, y, z]"},
				{Name: "rotate", Kind: command.KindVec3, Default: []float64{0, 0, 0}, Help: "Rotation [x, y, z] in degrees"},
				{Name: "scale", Kind: command.KindVec3, Default: []float64{1, 1, 1}, Help: "Scale [x, y, z]"},
			},
			Source: createCurveSource,
		},
		{
			Name:        "curve_modeling",
			Description: "Create geometry from curves: extrude, loft, revolve, sweep, planar, or bevel.",
			Args: []command.ArgSpec{
				{Name: "operation", Kind: command.KindEnum, Required: true, Enum: curveOperations, Help: "Modeling operation"},
				{Name: "curves", Kind: command.KindList, Required: true, Help: "Curve names; extrude and sweep take [profile, path]"},
				{Name: "name", Kind: command.KindString, Help: "Name for the result"},
				{Name: "parameters", Kind: command.KindMap, Help: "Operation settings, e.g. {'axis': 'y', 'angle': 360.0}"},
			},
			Source: curveModelingSource,
		},
	}
}

const createCurveSource = `def create_curve(curve_type, name=None, points=None, parameters=None, translate=None, rotate=None, scale=None):
    import math
    import random
    import maya.cmds as cmds
    if parameters is None:
        parameters = {}
    if name is None:
        name = curve_type + '_curve_' + str(int(random.random() * 1000))
    if curve_type == 'custom' and not points:
        raise ValueError('Error: points must be provided for a custom curve')

    def ring(count, radius_fn, height_fn=None):
        out = []
        for i in range(count + 1):
            angle = 2.0 * math.pi * i / count
            r = radius_fn(i, angle)
            y = height_fn(i, angle) if height_fn else 0.0
            out.append([r * math.cos(angle), y, r * math.sin(angle)])
        return out

    if points:
        curve_points = points
    elif curve_type == 'line':
        curve_points = [parameters.get('start_point', [-5.0, 0.0, 0.0]), parameters.get('end_point', [5.0, 0.0, 0.0])]
    elif curve_type == 'circle':
        radius = parameters.get('radius', 5.0)
        circ = cmds.circle(name=name, radius=radius, sections=parameters.get('sections', 8), normal=[0, 1, 0])
        curve = str(circ[0])
        cmds.setAttr(curve + '.translate', translate[0], translate[1], translate[2], type='double3')
        cmds.setAttr(curve + '.rotate', rotate[0], rotate[1], rotate[2], type='double3')
        cmds.setAttr(curve + '.scale', scale[0], scale[1], scale[2], type='double3')
        return {'success': True, 'name': curve, 'curve_type': curve_type}
    elif curve_type == 'square':
        s = parameters.get('size', 5.0) / 2.0
        curve_points = [[-s, 0, -s], [s, 0, -s], [s, 0, s], [-s, 0, s], [-s, 0, -s]]
    elif curve_type == 'rectangle':
        w = parameters.get('width', 8.0) / 2.0
        h = parameters.get('height', 4.0) / 2.0
        curve_points = [[-w, 0, -h], [w, 0, -h], [w, 0, h], [-w, 0, h], [-w, 0, -h]]
    elif curve_type in ('spiral', 'helix'):
        radius = parameters.get('radius', 5.0)
        turns = parameters.get('turns', 3)
        height = parameters.get('height', 2.0 if curve_type == 'spiral' else 10.0)
        steps = int(turns * 16)
        curve_points = []
        for i in range(steps + 1):
            t = float(i) / steps
            angle = 2.0 * math.pi * turns * t
            r = radius * (1.0 - 0.5 * t) if curve_type == 'spiral' else radius
            curve_points.append([r * math.cos(angle), height * t, r * math.sin(angle)])
    elif curve_type == 'arc':
        radius = parameters.get('radius', 5.0)
        sweep = math.radians(parameters.get('angle', 180.0))
        steps = 16
        curve_points = []
        for i in range(steps + 1):
            angle = sweep * i / steps
            curve_points.append([radius * math.cos(angle), 0.0, radius * math.sin(angle)])
    elif curve_type == 'star':
        outer = parameters.get('outer_radius', 5.0)
        inner = parameters.get('inner_radius', 2.0)
        spokes = parameters.get('points', 5)
        curve_points = ring(spokes * 2, lambda i, a: outer if i % 2 == 0 else inner)
    elif curve_type == 'gear':
        outer = parameters.get('outer_radius', 5.0)
        inner = parameters.get('inner_radius', 4.0)
        teeth = parameters.get('teeth', 8)
        curve_points = ring(teeth * 4, lambda i, a: outer if (i // 2) % 2 == 0 else inner)
    else:
        curve_points = points or []

    degree = 1 if curve_type in ('line', 'square', 'rectangle', 'star', 'gear') else 3
    if len(curve_points) <= degree:
        degree = 1
    curve = str(cmds.curve(name=name, point=[tuple(p) for p in curve_points], degree=degree))
    cmds.setAttr(curve + '.translate', translate[0], translate[1], translate[2], type='double3')
    cmds.setAttr(curve + '.rotate', rotate[0], rotate[1], rotate[2], type='double3')
    cmds.setAttr(curve + '.scale', scale[0], scale[1], scale[2], type='double3')
    return {'success': True, 'name': curve, 'curve_type': curve_type}`

const curveModelingSource = `def curve_modeling(operation, curves, name=None, parameters=None):
    import random
    import maya.cmds as cmds
    if parameters is None:
        parameters = {}
    if name is None:
        name = operation + '_' + str(int(random.random() * 1000))
    for curve in curves:
        if not cmds.objExists(curve):
            raise ValueError('Error: curve ' + curve + ' does not exist')

    if operation == 'extrude':
        if len(curves) < 2:
            raise ValueError('Error: extrude requires a profile and a path curve')
        result = cmds.extrude(curves[0], curves[1], name=name,
                              scale=parameters.get('scale', 1.0),
                              twist=parameters.get('twist', 0.0),
                              taper=parameters.get('taper', 1.0),
                              fixedPath=True, useComponentPivot=1)
    elif operation == 'loft':
        if len(curves) < 2:
            raise ValueError('Error: loft requires at least two profile curves')
        result = cmds.loft(*curves, name=name,
                           uniform=parameters.get('uniform', True),
                           close=parameters.get('close', False),
                           degree=parameters.get('degree', 3))
    elif operation == 'revolve':
        axis = {'x': [1, 0, 0], 'y': [0, 1, 0], 'z': [0, 0, 1]}[parameters.get('axis', 'y')]
        result = cmds.revolve(curves[0], name=name, axis=axis,
                              startSweep=0,
                              endSweep=parameters.get('angle', 360.0),
                              sections=parameters.get('sections', 8))
    elif operation == 'sweep':
        if len(curves) < 2:
            raise ValueError('Error: sweep requires a profile and a path curve')
        result = cmds.extrude(curves[0], curves[1], name=name, extrudeType=2, fixedPath=True)
    elif operation == 'planar':
        result = cmds.planarSrf(curves[0], name=name)
    elif operation == 'bevel':
        result = cmds.bevel(curves[0], name=name,
                            width=parameters.get('width', 0.5),
                            depth=parameters.get('depth', 0.5),
                            extrudeDepth=parameters.get('extrude_depth', 1.0))
    else:
        raise ValueError('Error: unknown operation ' + operation)

    return {'success': True, 'name': str(result[0]), 'operation': operation, 'curves': curves}`
