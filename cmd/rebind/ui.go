package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/keybindings/bindings"
	"github.com/milk9111/keybindings/input"
	"golang.org/x/image/font/basicfont"
)

var (
	white    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	panelBg  = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	buttonBg = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	hoverBg  = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255}
)

// NewBindingsUI builds two columns of buttons, one per action binding and
// one per axis binding. It is rebuilt whenever the registry changes.
func NewBindingsUI(g *Game) *ebitenui.UI {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

	actions := column(&face, "Actions")
	for _, b := range g.accessor.ListActionBindings() {
		label := fmt.Sprintf("%-12s %s", b.ActionName, input.Chord(b.Modifiers, b.Key))
		actions.AddChild(bindingButton(&face, label, func() {
			g.startCapture(bindings.CaptureAction(b), b.ActionName)
		}))
	}

	axes := column(&face, "Axes")
	for _, b := range g.accessor.ListAxisBindings() {
		label := fmt.Sprintf("%-12s %s x%g", b.AxisName, b.Key.DisplayName(), b.Scale)
		axes.AddChild(bindingButton(&face, label, func() {
			g.startCapture(bindings.CaptureAxis(b), b.AxisName)
		}))
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelBg)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(30),
			widget.RowLayoutOpts.Padding(widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(actions)
	panel.AddChild(axes)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func column(face *ebtext.Face, title string) *widget.Container {
	c := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
		)),
	)
	c.AddChild(widget.NewText(
		widget.TextOpts.Text(title, *face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	))
	return c
}

func bindingButton(face *ebtext.Face, label string, clicked func()) *widget.Button {
	idle := imageui.NewNineSliceColor(buttonBg)
	hover := imageui.NewNineSliceColor(hoverBg)
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: idle, Hover: hover, Pressed: hover}),
		widget.ButtonOpts.Text(label, *face, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(260, 20),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
		),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			clicked()
		}),
	)
}
