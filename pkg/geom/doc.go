// Package geom provides the small geometry vocabulary shared by the cascade
// packages: points, sizes and rectangles, distance metrics, and the named
// anchors (positions, corners, directions) and axis weights used to
// configure sort functions.
//
// Coordinates follow screen convention: x grows to the right and y grows
// downwards, so "top" is y == 0.
//
// Every enumeration has a String method and a Parse function. Parsing is
// lenient about separators and case, and unknown names fall back to a
// documented default instead of failing.
package geom
