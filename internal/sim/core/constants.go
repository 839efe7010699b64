package core

// GridSize is the world-space edge length of one map cell. Node positions
// divide by it when projecting onto a city grid.
const GridSize = 1.0
