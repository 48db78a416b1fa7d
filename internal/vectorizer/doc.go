// Package vectorizer implements a TF-IDF text vectorizer with a fixed
// output dimension. A model is either trained from a corpus with Fit or
// loaded from a YAML file produced by Save, and then turned into feature
// vectors with Transform. An untrained model transforms every input into
// the zero vector so the surrounding feature schema keeps its shape.
package vectorizer
