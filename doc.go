/*
Package hgt decodes SRTM elevation tiles stored in the .hgt format.

A tile covers one degree of latitude and longitude. Its south-west
corner is encoded in the file name (N35E138.hgt) and its resolution is
implied by the file size: 3601x3601 samples for SRTM1, 1201x1201 for
SRTM3. The body is a flat run of big-endian signed 16-bit samples,
row-major with the northern row first. A sample of -32768 marks a void.
*/
package hgt
