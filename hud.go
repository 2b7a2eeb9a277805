package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/adiwidya/kariesar/progress"
)

// hudTop is the screen y where the action panel starts; clicks above it are
// placement taps, clicks below it belong to the buttons.
const hudTop = baseHeight - 72

// HUD is the ebitenui layer: one caption line up top and the four action
// buttons along the bottom.
type HUD struct {
	ui            *ebitenui.UI
	caption       *widget.Text
	actionButtons []*widget.Button
	resetButton   *widget.Button
}

func NewHUD(onAction func(progress.Action), onReset func()) *HUD {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 170})
	btnIdle := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x4a, B: 0x66, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x33, B: 0x48, A: 255})
	btnDisabled := imageui.NewNineSliceColor(color.NRGBA{R: 0x2a, G: 0x2a, B: 0x2a, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	btnTextColor := &widget.ButtonTextColor{
		Idle:     color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Disabled: color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	}

	h := &HUD{}

	h.caption = widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionStart,
		})),
	)

	newButton := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnIdle, Pressed: btnPressed, Disabled: btnDisabled}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(110, 40),
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
			),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	actions := []struct {
		label  string
		action progress.Action
	}{
		{"Brush", progress.ActionBrush},
		{"Sweet", progress.ActionSweet},
		{"Healthy", progress.ActionHealthy},
	}
	for _, a := range actions {
		action := a.action
		btn := newButton(a.label, func() { onAction(action) })
		btn.GetWidget().Disabled = true
		h.actionButtons = append(h.actionButtons, btn)
	}

	h.resetButton = newButton("Reset", onReset)
	h.resetButton.GetWidget().Disabled = true

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(12),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 14, Bottom: 14, Left: 24, Right: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth, baseHeight-hudTop),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	for _, btn := range h.actionButtons {
		panel.AddChild(btn)
	}
	panel.AddChild(h.resetButton)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(h.caption)
	root.AddChild(panel)

	h.ui = &ebitenui.UI{Container: root}
	return h
}

func (h *HUD) Update() {
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}

func (h *HUD) SetCaption(s string) {
	h.caption.Label = s
}

func (h *HUD) SetActionsEnabled(enabled bool) {
	for _, btn := range h.actionButtons {
		btn.GetWidget().Disabled = !enabled
	}
}

func (h *HUD) SetResetEnabled(enabled bool) {
	h.resetButton.GetWidget().Disabled = !enabled
}
