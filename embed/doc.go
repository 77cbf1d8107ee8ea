// Package embed projects high-dimensional feature vectors to 2D for
// visualization.
//
// The projection is classical multidimensional scaling (Torgerson scaling,
// gonum stat/mds) over the pairwise Euclidean distance matrix. It is used
// strictly as an opaque, deterministic primitive: no tuning surface, no
// iteration, and the coordinates carry no meaning beyond relative layout.
// When the input is exactly Euclidean-embeddable in 2D the pairwise
// distances are reproduced (up to rotation/reflection); otherwise the two
// leading principal coordinates are a best-effort layout.
package embed
