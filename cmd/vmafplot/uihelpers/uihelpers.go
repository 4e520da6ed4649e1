package uihelpers

// ComputeChartDimensions clamps a requested window width and derives a 16:9 height.
// Returns clamped width & height in pixels.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 640 {
		w = 640
	}
	if w > 3840 {
		w = 3840
	}
	h := w * 9 / 16
	if h < 360 {
		h = 360
	}
	return w, h
}

// ContainRect returns where an image of imgW x imgH lands inside a view of viewW x viewH
// when scaled with "contain" semantics (aspect preserved, centered).
// Returns the drawn origin, the drawn size and the scale factor image->view.
func ContainRect(imgW, imgH, viewW, viewH float32) (drawX, drawY, drawW, drawH, scale float32) {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return 0, 0, 0, 0, 0
	}
	sx := viewW / imgW
	sy := viewH / imgH
	scale = sx
	if sy < sx {
		scale = sy
	}
	drawW = imgW * scale
	drawH = imgH * scale
	drawX = (viewW - drawW) / 2
	drawY = (viewH - drawH) / 2
	return drawX, drawY, drawW, drawH, scale
}

// ViewToImage maps a point in view coordinates to image pixels.
// ok is false when the point falls in the letterbox outside the drawn image.
func ViewToImage(vx, vy, imgW, imgH, viewW, viewH float32) (ix, iy float64, ok bool) {
	dx, dy, dw, dh, s := ContainRect(imgW, imgH, viewW, viewH)
	if s == 0 || vx < dx || vy < dy || vx > dx+dw || vy > dy+dh {
		return 0, 0, false
	}
	return float64((vx - dx) / s), float64((vy - dy) / s), true
}

// ImageToView maps image pixels back to view coordinates.
func ImageToView(ix, iy float64, imgW, imgH, viewW, viewH float32) (vx, vy float32) {
	dx, dy, _, _, s := ContainRect(imgW, imgH, viewW, viewH)
	return dx + float32(ix)*s, dy + float32(iy)*s
}
