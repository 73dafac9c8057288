// Package main provides a command line program that trains a named entity
// extractor from word embeddings and a JSON lines corpus, then reports how well
// the extractor reproduces its own training set.
//
// Each corpus line holds one sentence:
//
//	{"tokens":["John","lives","in","Boston"],"entities":[{"start":3,"end":4,"label":"LOCATION"}]}
//
// Usage:
//
//	train_ner --embeddings vectors.txt --corpus train.jsonl --threads 8 --beta 0.5
//
// Every flag can also be set through the environment, e.g. NER_THREADS=8.
package main
