// Package match implements normalized cross-correlation template search.
//
// [CosineSearch] slides a template over an image and scores every offset at
// which the template lies fully inside the image by the cosine similarity of
// the template and the image window under it:
//
//	score(t) = Σ T(x)·I(x+t) / (‖T‖ · sqrt(Σ I(x+t)²))
//
// Both sums are computed in the frequency domain with two correlators of the
// image size, so a search costs a handful of 2D transforms regardless of the
// template size. Scores lie in [-1, 1]; an exact or scaled copy of the template
// scores 1. Windows without energy score 0.
package match
