package scene

// Unit cube geometry shared by the face and wireframe passes.

var Corners = [8]Vec3{
	{-1, -1, -1},
	{-1, 1, -1},
	{1, 1, -1},
	{1, -1, -1},
	{-1, -1, 1},
	{-1, 1, 1},
	{1, 1, 1},
	{1, -1, 1},
}

var Edges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

var Faces = [6][4]int{
	{0, 3, 2, 1}, // back  (z = -1)
	{4, 5, 6, 7}, // front (z = +1)
	{0, 1, 5, 4}, // left  (x = -1)
	{3, 7, 6, 2}, // right (x = +1)
	{1, 2, 6, 5}, // top   (y = +1)
	{0, 4, 7, 3}, // bottom(y = -1)
}

// CornerWorld returns corner i of cube c in world space, applying the cube's
// own rotation, half-size scale and current position.
func CornerWorld(c *Cube, i int, halfSize float64) Vec3 {
	v := Corners[i].Scale(halfSize)
	v = v.RotateX(c.RotX)
	v = v.RotateY(c.RotY)
	return v.Add(c.Pos)
}
