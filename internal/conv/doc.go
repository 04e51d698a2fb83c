// Package conv provides checked integer conversions for the size and count
// arithmetic around model file headers and vocabulary regions.
package conv
