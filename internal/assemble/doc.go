// Package assemble converts a directory of downloaded page images
// into the final deliverables: an image-embedding PDF with a bookmark
// outline, and a CBZ comic archive.
//
// Both assemblers iterate the image directory in filename order and
// rely on the zero-padded sequence prefix of the page filenames for
// page ordering.
package assemble
