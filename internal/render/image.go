package render

// ImageOpts controls DrawImage. CenterH and CenterV shift the origin by half
// the scaled width and height respectively.
type ImageOpts struct {
	Scale   int
	CenterH bool
	CenterV bool
	Erase   bool
}

func (r *Renderer) DrawImage(name string, x, y int, opts ImageOpts) error {
	img, err := r.assets.Image(name)
	if err != nil {
		return err
	}
	scale := max(opts.Scale, 1)
	if opts.CenterH {
		x -= img.Width * scale / 2
	}
	if opts.CenterV {
		y -= img.Height * scale / 2
	}
	r.blit(img, x, y, colorFor(opts.Erase), scale)
	return nil
}
