// Package whiten implements PCA whitening: a linear transform that centers
// data, decorrelates features via eigendecomposition of the covariance
// matrix, and rescales each principal axis to unit variance.
//
// 🚀 The recipe (identical in both modes):
//
//	1. Center: subtract the empirical column mean from every sample.
//	2. Covariance: unbiased estimator of the centered samples (divide by N−1).
//	3. Eigendecomposition: symmetric eigensolver (gonum mat.EigenSym), so
//	   eigenvalues are guaranteed real and the factorization is stable.
//	4. Order: eigenpairs sorted by eigenvalue descending; ties keep the
//	   solver's index order (stable sort) for reproducibility.
//	5. Transform: eigenvectors scaled by 1/√(λ+ε) assembled as columns;
//	   whitened = centered × transform.
//
// ✨ Two call shapes, one algorithm:
//
//   - Batch: N row-vector samples × D features, e.g. a stack of
//     flattened full-geometry vectors, one per run.
//   - Image: a single H×W×C image whose spatial positions are the
//     samples and whose channels are the features. Image reshapes and
//     delegates to the Batch kernel, so the two shapes are provably the same
//     transform under the same axis assignment.
//
// ⚙️ Numeric policy:
//
//   - ε (default 1e-5) is an additive stabilizer: near-zero eigenvalues never
//     divide by zero, so rank-deficient covariance (D > N−1) needs no special
//     branch. Axes with λ ≈ 0 are noise-dominated after whitening; that is a
//     known caveat of the recipe, not a defect.
//   - NaN/Inf propagate silently by default, matching the reference
//     behavior. Set Options.ValidateNaNInf to reject them up front with
//     ErrNaNInf instead.
//
// Determinism: identical input and ε always produce identical output. No
// randomness, no map iteration, fixed loop orders throughout.
//
// Complexity: O(N·D²) for the covariance, O(D³) for the eigendecomposition,
// O(N·D²) for the final product. Memory O(N·D + D²).
package whiten
