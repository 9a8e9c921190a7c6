// Package main provides the entry point of folio, a personal academic portfolio site.
// It serves the public portfolio page, an admin area to manage publications, speeches,
// awards, gallery images and the other sections, and a JSON API for the same content.
// Content lives in a relational database through gorm; uploads go to the local
// filesystem, S3 or Google Cloud Storage.
package main
