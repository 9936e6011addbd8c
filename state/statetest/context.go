// Package statetest provides a state.Context that records what is done to it
// instead of rendering.
package statetest

import (
	"image/color"

	"github.com/faiface/pixel"
)

// Context is a fake state.Context. Triangles and pictures made from it are
// real pixel.TrianglesData, so drawing code runs unchanged against it.
type Context struct {
	Rect     pixel.Rect
	Clears   []color.Color
	Presents int
	// Draws counts triangle batches drawn, with or without a picture.
	Draws int
}

func NewContext(width, height float64) *Context {
	return &Context{Rect: pixel.R(0, 0, width, height)}
}

func (ctx *Context) Bounds() pixel.Rect {
	return ctx.Rect
}

func (ctx *Context) Clear(c color.Color) {
	ctx.Clears = append(ctx.Clears, c)
}

func (ctx *Context) Present() {
	ctx.Presents++
}

func (ctx *Context) MakeTriangles(t pixel.Triangles) pixel.TargetTriangles {
	data := pixel.MakeTrianglesData(t.Len())
	data.Update(t)
	return &triangles{TrianglesData: data, ctx: ctx}
}

func (ctx *Context) MakePicture(p pixel.Picture) pixel.TargetPicture {
	return &picture{Picture: p, ctx: ctx}
}

type triangles struct {
	*pixel.TrianglesData
	ctx *Context
}

func (t *triangles) Draw() {
	t.ctx.Draws++
}

type picture struct {
	pixel.Picture
	ctx *Context
}

func (p *picture) Draw(t pixel.TargetTriangles) {
	p.ctx.Draws++
}
