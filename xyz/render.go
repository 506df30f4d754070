// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image"
	"image/color"
	"sort"

	"github.com/fogleman/gg"
	"github.com/hepvis/eventdisplay/base/iox/imagex"
	"github.com/hepvis/eventdisplay/colors"
	"github.com/hepvis/eventdisplay/math32"
)

// primitive is a projected triangle or line segment ready to draw.
type primitive struct {
	pts   [3]math32.Vector2
	npts  int
	depth float32
	color color.NRGBA
	width float32
}

// Renderer draws a [Scene] as seen by a [Camera] into an image,
// sorting the primitives from back to front. Triangles are flat
// shaded: unlit materials use their color and shaded materials
// are lit by the scene lights.
type Renderer struct {

	// Size is the size of the rendered image in pixels.
	Size image.Point

	// LineScale scales the width of lines.
	LineScale float32

	// Clip returns whether a world point on the given material is clipped.
	// Nothing is clipped when nil.
	Clip func(mat *Material, point math32.Vector3) bool

	prims []primitive
}

// Render renders the scene from the given camera.
// World matrices must be up to date.
func (rn *Renderer) Render(sc *Scene, cam *Camera) *image.RGBA {
	w, h := rn.Size.X, rn.Size.Y
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	if rn.LineScale == 0 {
		rn.LineScale = 1
	}
	rn.prims = rn.prims[:0]
	vp := cam.ViewProjection()
	for _, n := range visibleNodes(sc.Root) {
		if n.Mesh == nil || n.Material == nil {
			continue
		}
		switch n.Kind {
		case KindMesh:
			rn.addTriangles(sc, cam, &vp, n)
		case KindLine:
			rn.addLines(&vp, n)
		}
	}
	sort.SliceStable(rn.prims, func(i, j int) bool {
		return rn.prims[i].depth > rn.prims[j].depth
	})

	dc := gg.NewContext(w, h)
	dc.SetColor(sc.BackgroundColor)
	dc.Clear()
	for i := range rn.prims {
		p := &rn.prims[i]
		dc.SetColor(p.color)
		if p.npts == 2 {
			dc.SetLineWidth(float64(p.width))
			dc.DrawLine(float64(p.pts[0].X), float64(p.pts[0].Y), float64(p.pts[1].X), float64(p.pts[1].Y))
			dc.Stroke()
			continue
		}
		dc.MoveTo(float64(p.pts[0].X), float64(p.pts[0].Y))
		dc.LineTo(float64(p.pts[1].X), float64(p.pts[1].Y))
		dc.LineTo(float64(p.pts[2].X), float64(p.pts[2].Y))
		dc.ClosePath()
		dc.Fill()
	}
	return imagex.AsRGBA(dc.Image())
}

// visibleNodes returns the nodes below root, including it, that are
// visible along with all of their ancestors.
func visibleNodes(root *Node) []*Node {
	var nodes []*Node
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !n.Visible {
			continue
		}
		nodes = append(nodes, n)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return nodes
}

// toScreen projects the given world point to pixel coordinates and
// depth, returning false if it is behind the camera.
func (rn *Renderer) toScreen(vp *math32.Matrix4, p math32.Vector3) (math32.Vector2, float32, bool) {
	clip := math32.Vector4FromVector3(p, 1).MulMatrix4(vp)
	if clip.W <= 0 {
		return math32.Vector2{}, 0, false
	}
	ndc := clip.PerspDiv()
	sx := (ndc.X + 1) / 2 * float32(rn.Size.X)
	sy := (1 - ndc.Y) / 2 * float32(rn.Size.Y)
	return math32.Vec2(sx, sy), ndc.Z, true
}

func (rn *Renderer) clipped(mat *Material, p math32.Vector3) bool {
	return rn.Clip != nil && rn.Clip(mat, p)
}

func (rn *Renderer) addTriangles(sc *Scene, cam *Camera, vp *math32.Matrix4, n *Node) {
	mat := n.Material
	base := materialColor(mat)
	for _, tri := range n.Mesh.Triangles() {
		wt := tri.MulMatrix4(&n.Pose.WorldMatrix)
		mid := wt.Midpoint()
		if rn.clipped(mat, mid) {
			continue
		}
		norm := wt.Normal()
		toCam := cam.Pose.Pos.Sub(mid)
		if cam.Projection == Orthographic {
			toCam = cam.ViewDir().Negate()
		}
		front := norm.Dot(toCam) >= 0
		switch mat.Side {
		case SideFront:
			if !front {
				continue
			}
		case SideBack:
			if front {
				continue
			}
			norm = norm.Negate()
		case SideDouble:
			if !front {
				norm = norm.Negate()
			}
		}
		var pr primitive
		ok := true
		var depth float32
		for i, v := range [3]math32.Vector3{wt.A, wt.B, wt.C} {
			var z float32
			pr.pts[i], z, ok = rn.toScreen(vp, v)
			if !ok {
				break
			}
			depth += z
		}
		if !ok {
			continue
		}
		pr.npts = 3
		pr.depth = depth / 3
		pr.color = base
		if mat.Kind == MaterialPhong {
			pr.color = shade(sc, base, norm)
		}
		rn.prims = append(rn.prims, pr)
	}
}

func (rn *Renderer) addLines(vp *math32.Matrix4, n *Node) {
	mat := n.Material
	base := materialColor(mat)
	width := mat.LineWidth * rn.LineScale
	if width <= 0 {
		width = 1
	}
	for _, seg := range n.Mesh.Segments() {
		v0 := seg[0].MulMatrix4(&n.Pose.WorldMatrix)
		v1 := seg[1].MulMatrix4(&n.Pose.WorldMatrix)
		if rn.clipped(mat, v0.Lerp(v1, 0.5)) {
			continue
		}
		p0, z0, ok0 := rn.toScreen(vp, v0)
		p1, z1, ok1 := rn.toScreen(vp, v1)
		if !ok0 || !ok1 {
			continue
		}
		pr := primitive{npts: 2, depth: (z0 + z1) / 2, color: base, width: width}
		pr.pts[0], pr.pts[1] = p0, p1
		rn.prims = append(rn.prims, pr)
	}
}

// materialColor returns the color of the material with its opacity as alpha.
func materialColor(mat *Material) color.NRGBA {
	c := mat.Color
	return color.NRGBA{c.R, c.G, c.B, uint8(math32.Clamp(mat.Alpha(), 0, 1)*255 + 0.5)}
}

// shade returns the given color lit by the lights of the scene
// on a surface with the given world normal.
func shade(sc *Scene, base color.NRGBA, norm math32.Vector3) color.NRGBA {
	var light math32.Vector3
	for _, lt := range sc.Lights.Values() {
		switch l := lt.(type) {
		case *AmbientLight:
			light.SetAdd(l.Radiance())
		case *DirLight:
			f := math32.Max(0, norm.Dot(l.ToLight()))
			light.SetAdd(l.Radiance().MulScalar(f))
		}
	}
	r, g, b, _ := colors.Float32(color.RGBA{base.R, base.G, base.B, 255})
	lit := colors.FromFloat32(r*light.X, g*light.Y, b*light.Z, 1)
	return color.NRGBA{lit.R, lit.G, lit.B, base.A}
}
