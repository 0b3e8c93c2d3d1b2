// Package gm (stands for geometry math) provides the few geometry primitives
// the actor world needs.
//
// It includes a 2d vector type called Vec, an axis aligned rectangle Rect and
// a type named Rad to represent angle values in radian.
//
// Coordinates follow the world convention: the origin is in the center of the
// screen and the y axis points upwards.
package gm
