// Package trainer aggregates annotated sentences and trains named entity
// extractors from them. Training fits a BIO span detector with a beta weighted
// structured hinge loss, then a class balanced segment classifier over the
// gold spans, the detector's false alarms and near misses around each gold
// span, and bundles both with the embeddings into an inference.Extractor.
package trainer
