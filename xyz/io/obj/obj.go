// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This package is based extensively on https://github.com/g3n/engine :
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obj is used to parse the Wavefront OBJ file format (*.obj), including
// associated materials (*.mtl). Only geometry (vertices, faces and polylines)
// and diffuse material colors are used. Basic format info:
// https://en.wikipedia.org/wiki/Wavefront_.obj_file
package obj

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hepvis/eventdisplay/colors"
	"github.com/hepvis/eventdisplay/math32"
	"github.com/hepvis/eventdisplay/xyz"
)

// note: importers of the engine import this package for its side effect
func init() {
	xyz.Decoders[".obj"] = &Decoder{}
}

// Decoder contains all decoded data from the obj and mtl files.
// It also implements the [xyz.Decoder] interface and an instance
// is registered to handle .obj files.
type Decoder struct {
	Objects    []*Object            // decoded objects
	Matlib     string               // name of the material lib
	Materials  map[string]*Material // maps material name to object
	Vertices   []math32.Vector3     // vertex positions
	Warnings   []string             // warning messages
	line       int                  // current line number
	objCurrent *Object              // current object
	matCurrent *Material            // current material
}

func (dec *Decoder) New() xyz.Decoder {
	return &Decoder{Materials: map[string]*Material{}, line: 1}
}

func (dec *Decoder) Desc() string {
	return ".obj = Wavefront OBJ format, including associated materials (.mtl) which can be passed as a second reader, otherwise a default material is used. Only supports object-level data, not full scenes."
}

// Decode reads the given data and decodes into Decoder tmp vars.
// If 2 readers are passed, the first is .obj and second is .mtl.
func (dec *Decoder) Decode(rs []io.Reader) error {
	if len(rs) == 0 {
		return errors.New("obj.Decoder: no readers passed")
	}
	if err := dec.parse(rs[0], dec.parseObjLine); err != nil {
		return err
	}
	if len(dec.Vertices) == 0 {
		return errors.New("obj.Decoder: no vertices")
	}
	dec.matCurrent = nil
	useDef := len(rs) == 1
	if len(rs) > 1 {
		if err := dec.parse(rs[1], dec.parseMtlLine); err != nil {
			slog.Debug("obj.Decoder: material library not usable, using default material", "err", err)
			useDef = true
		}
	}
	if useDef {
		for key := range dec.Materials {
			dec.Materials[key] = defaultMat
		}
	}
	for _, w := range dec.Warnings {
		slog.Debug("obj.Decoder", "warning", w)
	}
	return nil
}

// Object contains all information about one decoded object
type Object struct {
	Name  string // Object name
	Faces []Face // Faces
	Lines []Face // Polylines
}

// Face contains all information about an object face or polyline
type Face struct {
	Vertices []int  // Indices to the face vertices
	Material string // Material name
}

// Material contains the used information about an object material
type Material struct {
	Name      string     // Material name
	Illum     int        // Illumination model
	Opacity   float32    // Opacity factor
	Shininess float32    // Shininess (specular exponent)
	Ambient   color.RGBA // Ambient color reflectivity
	Diffuse   color.RGBA // Diffuse color reflectivity
	Specular  color.RGBA // Specular color reflectivity
	Emissive  color.RGBA // Emissive color
}

// Light gray default material used as when other materials cannot be loaded.
var defaultMat = &Material{
	Diffuse:   color.RGBA{0xA0, 0xA0, 0xA0, 0xFF},
	Ambient:   color.RGBA{0xA0, 0xA0, 0xA0, 0xFF},
	Specular:  color.RGBA{0x80, 0x80, 0x80, 0xFF},
	Shininess: 30.0,
}

// Local constants
const (
	blanks  = "\r\n\t "
	objType = "obj"
	mtlType = "mtl"
)

// SetGroup adds a group per decoded object to the given group,
// holding one mesh node per run of faces with the same material
// and one line node with the polylines.
func (dec *Decoder) SetGroup(gp *xyz.Node) {
	for _, ob := range dec.Objects {
		if len(ob.Faces) == 0 && len(ob.Lines) == 0 {
			continue
		}
		objgp := xyz.NewGroup(ob.Name)
		gp.AddChild(objgp)
		dec.setObject(objgp, ob)
	}
}

// setObject adds the meshes of the given object to its group.
func (dec *Decoder) setObject(objgp *xyz.Node, ob *Object) {
	matName := ""
	var ms *xyz.Mesh
	var vmap map[int]uint32
	idx := 0
	for fi := range ob.Faces {
		face := &ob.Faces[fi]
		if face.Material != matName || ms == nil {
			nm := fmt.Sprintf("%s_%d", ob.Name, idx)
			ms = &xyz.Mesh{Name: nm, Mode: xyz.Triangles}
			vmap = map[int]uint32{}
			objgp.AddChild(xyz.NewMeshNode(nm, ms, dec.material(face.Material, ob.Name)))
			matName = face.Material
			idx++
		}
		// triangle fan: 0, i-1, i
		for i := 2; i < len(face.Vertices); i++ {
			dec.copyVertex(ms, vmap, face.Vertices[0])
			dec.copyVertex(ms, vmap, face.Vertices[i-1])
			dec.copyVertex(ms, vmap, face.Vertices[i])
		}
	}
	if len(ob.Lines) == 0 {
		return
	}
	nm := fmt.Sprintf("%s_%d", ob.Name, idx)
	lm := &xyz.Mesh{Name: nm, Mode: xyz.Lines}
	vmap = map[int]uint32{}
	for _, ln := range ob.Lines {
		for i := 1; i < len(ln.Vertices); i++ {
			dec.copyVertex(lm, vmap, ln.Vertices[i-1])
			dec.copyVertex(lm, vmap, ln.Vertices[i])
		}
	}
	mat := dec.material(ob.Lines[0].Material, ob.Name)
	objgp.AddChild(xyz.NewLineNode(nm, lm, xyz.NewLineBasicMaterial(mat.Color, 1)))
}

// copyVertex appends the index of the given decoded vertex to the mesh,
// adding the vertex to the mesh positions the first time it is used.
func (dec *Decoder) copyVertex(ms *xyz.Mesh, vmap map[int]uint32, vi int) {
	mi, has := vmap[vi]
	if !has {
		mi = uint32(len(ms.Positions))
		ms.Positions = append(ms.Positions, dec.Vertices[vi])
		vmap[vi] = mi
	}
	ms.Indices = append(ms.Indices, mi)
}

// material returns a new shaded material for the given material name.
// OBJ files do not reliably wind their faces, so both sides are drawn.
func (dec *Decoder) material(matnm, obnm string) *xyz.Material {
	mat := dec.Materials[matnm]
	if mat == nil {
		mat = defaultMat
		if matnm != "" {
			dec.appendWarn(objType, fmt.Sprintf("could not find material: %s for object %s. using default material.", matnm, obnm))
		}
	}
	xm := xyz.NewPhongMaterial(mat.Diffuse)
	xm.Side = xyz.SideDouble
	if mat.Opacity > 0 && mat.Opacity < 1 {
		xm.Opacity = mat.Opacity
		xm.Transparent = true
	}
	return xm
}

// parse reads the lines from the specified reader and dispatch them
// to the specified line parser.
func (dec *Decoder) parse(reader io.Reader, parseLine func(string) error) error {
	bufin := bufio.NewReader(reader)
	dec.line = 1
	for {
		line, err := bufin.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		line = strings.Trim(line, blanks)
		if perr := parseLine(line); perr != nil {
			return perr
		}
		if err == io.EOF {
			break
		}
		dec.line++
	}
	return nil
}

// Parses obj file line, dispatching to specific parsers
func (dec *Decoder) parseObjLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	ltype := fields[0]
	if strings.HasPrefix(ltype, "#") {
		return nil
	}
	switch ltype {
	case "mtllib":
		return dec.parseMatlib(fields[1:])
	// Groups are considered the same as objects
	case "o", "g":
		return dec.parseObject(fields[1:])
	case "v":
		return dec.parseVertex(fields[1:])
	case "f":
		return dec.parseFace(fields[1:], false)
	case "l":
		return dec.parseFace(fields[1:], true)
	case "usemtl":
		return dec.parseUsemtl(fields[1:])
	case "vn", "vt", "s":
		// normals are recomputed per face, textures are not used
	default:
		dec.appendWarn(objType, "field not supported: "+ltype)
	}
	return nil
}

// Parses a mtllib line:
// mtllib <name>
func (dec *Decoder) parseMatlib(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("Material library (mtllib) with no fields")
	}
	dec.Matlib = fields[0]
	return nil
}

// Parses an object line:
// o <name>
func (dec *Decoder) parseObject(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("Object line (o) with no fields")
	}
	dec.objCurrent = &Object{Name: fields[0]}
	dec.Objects = append(dec.Objects, dec.objCurrent)
	return nil
}

// Parses a vertex position line
// v <x> <y> <z> [w]
func (dec *Decoder) parseVertex(fields []string) error {
	if len(fields) < 3 {
		return dec.formatError("Less than 3 vertices in 'v' line")
	}
	var v [3]float32
	for i, f := range fields[:3] {
		val, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return dec.formatError("'v' parse float error")
		}
		v[i] = float32(val)
	}
	dec.Vertices = append(dec.Vertices, math32.Vec3(v[0], v[1], v[2]))
	return nil
}

// parseFace parses a face or polyline decription line:
// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
// l v1[/vt1] v2[/vt2] ...
func (dec *Decoder) parseFace(fields []string, line bool) error {
	if dec.objCurrent == nil {
		// a face before any g or o line is allowed: it goes
		// into a new default object
		dec.parseObject([]string{fmt.Sprintf("unnamed%d", dec.line)})
	}
	minFields := 3
	if line {
		minFields = 2
	}
	if len(fields) < minFields {
		return dec.formatError(fmt.Sprintf("Face line with less than %d fields", minFields))
	}
	face := Face{Vertices: make([]int, len(fields))}
	if dec.matCurrent != nil {
		face.Material = dec.matCurrent.Name
	}
	for pos, f := range fields {
		// only the vertex position component of v/vt/vn is used
		vfields := strings.Split(f, "/")
		val, err := strconv.ParseInt(vfields[0], 10, 32)
		if err != nil {
			return dec.formatError("Face vertex index parse error")
		}
		switch {
		case val > 0:
			face.Vertices[pos] = int(val - 1)
		case val < 0:
			// relative to the last parsed vertex
			face.Vertices[pos] = len(dec.Vertices) + int(val)
		default:
			return dec.formatError("Face vertex index value equal to 0")
		}
		if vi := face.Vertices[pos]; vi < 0 || vi >= len(dec.Vertices) {
			return dec.formatError(fmt.Sprintf("Face vertex index %d out of range", val))
		}
	}
	if line {
		dec.objCurrent.Lines = append(dec.objCurrent.Lines, face)
	} else {
		dec.objCurrent.Faces = append(dec.objCurrent.Faces, face)
	}
	return nil
}

// parseUsemtl parses a "usemtl" decription line:
// usemtl <name>
func (dec *Decoder) parseUsemtl(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("Usemtl with no fields")
	}
	name := fields[0]
	mat := dec.Materials[name]
	if mat == nil {
		mat = &Material{Name: name, Diffuse: defaultMat.Diffuse}
		dec.Materials[name] = mat
	}
	dec.matCurrent = mat
	return nil
}

// Parses material file line, dispatching to specific parsers
func (dec *Decoder) parseMtlLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	ltype := fields[0]
	if strings.HasPrefix(ltype, "#") {
		return nil
	}
	if ltype != "newmtl" && dec.matCurrent == nil {
		return dec.formatError(ltype + " before newmtl")
	}
	switch ltype {
	case "newmtl":
		return dec.parseNewmtl(fields[1:])
	case "d":
		return dec.parseFloat(fields[1:], ltype, &dec.matCurrent.Opacity)
	case "Ns":
		return dec.parseFloat(fields[1:], ltype, &dec.matCurrent.Shininess)
	case "Ka":
		return dec.parseColor(fields[1:], ltype, &dec.matCurrent.Ambient)
	case "Kd":
		return dec.parseColor(fields[1:], ltype, &dec.matCurrent.Diffuse)
	case "Ke":
		return dec.parseColor(fields[1:], ltype, &dec.matCurrent.Emissive)
	case "Ks":
		return dec.parseColor(fields[1:], ltype, &dec.matCurrent.Specular)
	case "illum":
		return dec.parseIllum(fields[1:])
	default:
		dec.appendWarn(mtlType, "field not supported: "+ltype)
	}
	return nil
}

// Parses new material definition
// newmtl <mat_name>
func (dec *Decoder) parseNewmtl(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("newmtl with no fields")
	}
	name := fields[0]
	mat := dec.Materials[name]
	if mat == nil {
		mat = &Material{Name: name}
		dec.Materials[name] = mat
	}
	dec.matCurrent = mat
	return nil
}

// parseFloat parses a single float field:
// <ltype> <value>
func (dec *Decoder) parseFloat(fields []string, ltype string, v *float32) error {
	if len(fields) < 1 {
		return dec.formatError("'" + ltype + "' with no fields")
	}
	val, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return dec.formatError("'" + ltype + "' parse float error")
	}
	*v = float32(val)
	return nil
}

// parseColor parses a color reflectivity line:
// <ltype> r g b
func (dec *Decoder) parseColor(fields []string, ltype string, clr *color.RGBA) error {
	if len(fields) < 3 {
		return dec.formatError("'" + ltype + "' with less than 3 fields")
	}
	var c [3]float32
	for pos, f := range fields[:3] {
		val, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return dec.formatError("'" + ltype + "' parse float error")
		}
		c[pos] = float32(val)
	}
	*clr = colors.FromFloat32(c[0], c[1], c[2], 1)
	return nil
}

// Parses illumination model (0 to 10)
// illum <ilum_#>
func (dec *Decoder) parseIllum(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("'illum' with no fields")
	}
	val, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return dec.formatError("'illum' parse int error")
	}
	dec.matCurrent.Illum = int(val)
	return nil
}

func (dec *Decoder) formatError(msg string) error {
	return fmt.Errorf("%s in line:%d", msg, dec.line)
}

func (dec *Decoder) appendWarn(ftype string, msg string) {
	dec.Warnings = append(dec.Warnings, fmt.Sprintf("%s(%d): %s", ftype, dec.line, msg))
}
