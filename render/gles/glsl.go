// This file is part of GopherGE.
//
// GopherGE is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherGE is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherGE.  If not, see <https://www.gnu.org/licenses/>.

package gles

import (
	"fmt"
	"strings"
)

// GLSL source is generated from the shader fingerprint rather than selected
// from a fixed set. The generated programs only declare the attributes and
// uniforms the fingerprint requires, so unused state costs nothing at draw
// time.

func generateVertexShader(id vertexShaderID) string {
	var b strings.Builder

	through := id&vsThrough != 0
	texcoord := id&vsTexcoord != 0
	color := id&vsColor != 0
	normal := id&vsNormal != 0
	lighting := id&vsLighting != 0

	b.WriteString("#version 150\n")

	b.WriteString("in vec3 a_position;\n")
	if texcoord {
		b.WriteString("in vec2 a_texcoord;\n")
	}
	if color {
		b.WriteString("in vec4 a_color;\n")
	}
	if normal {
		b.WriteString("in vec3 a_normal;\n")
	}

	if through {
		// through-mode vertices are in screen coordinates. the projection
		// uniform holds an ortho matrix over the render target
		b.WriteString("uniform mat4 u_proj;\n")
	} else {
		b.WriteString("uniform mat4 u_proj;\n")
		b.WriteString("uniform mat4 u_world;\n")
		b.WriteString("uniform mat4 u_view;\n")
	}
	if texcoord {
		b.WriteString("uniform vec4 u_uvscaleoffset;\n")
	}

	if lighting {
		b.WriteString("uniform vec4 u_ambient;\n")
		b.WriteString("uniform vec4 u_matambientalpha;\n")
		b.WriteString("uniform vec3 u_matdiffuse;\n")
		b.WriteString("uniform vec4 u_matspecular;\n")
		b.WriteString("uniform vec3 u_matemissive;\n")
		for i := 0; i < 4; i++ {
			if id&(vsLight0Enable<<i) == 0 {
				continue
			}
			fmt.Fprintf(&b, "uniform vec3 u_lightpos%d;\n", i)
			fmt.Fprintf(&b, "uniform vec3 u_lightdir%d;\n", i)
			fmt.Fprintf(&b, "uniform vec3 u_lightatt%d;\n", i)
			fmt.Fprintf(&b, "uniform vec2 u_lightspot%d;\n", i)
			fmt.Fprintf(&b, "uniform vec3 u_lightambient%d;\n", i)
			fmt.Fprintf(&b, "uniform vec3 u_lightdiffuse%d;\n", i)
			fmt.Fprintf(&b, "uniform vec3 u_lightspecular%d;\n", i)
		}
	}

	b.WriteString("out vec4 v_color;\n")
	if texcoord {
		b.WriteString("out vec2 v_texcoord;\n")
	}
	b.WriteString("out float v_fogdepth;\n")

	b.WriteString("void main() {\n")

	if through {
		b.WriteString("  gl_Position = u_proj * vec4(a_position, 1.0);\n")
		b.WriteString("  v_fogdepth = 0.0;\n")
	} else {
		b.WriteString("  vec4 worldpos = u_world * vec4(a_position, 1.0);\n")
		b.WriteString("  vec4 viewpos = u_view * worldpos;\n")
		b.WriteString("  gl_Position = u_proj * viewpos;\n")
		b.WriteString("  v_fogdepth = -viewpos.z;\n")
	}

	if texcoord {
		b.WriteString("  v_texcoord = a_texcoord * u_uvscaleoffset.xy + u_uvscaleoffset.zw;\n")
	}

	switch {
	case lighting:
		if normal {
			b.WriteString("  vec3 worldnormal = normalize((u_world * vec4(a_normal, 0.0)).xyz);\n")
		} else {
			b.WriteString("  vec3 worldnormal = vec3(0.0, 0.0, 1.0);\n")
		}
		if color {
			b.WriteString("  vec3 ambientbase = a_color.rgb;\n")
			b.WriteString("  vec3 diffusebase = a_color.rgb;\n")
			b.WriteString("  float alpha = a_color.a;\n")
		} else {
			b.WriteString("  vec3 ambientbase = u_matambientalpha.rgb;\n")
			b.WriteString("  vec3 diffusebase = u_matdiffuse;\n")
			b.WriteString("  float alpha = u_matambientalpha.a;\n")
		}
		b.WriteString("  vec3 lit = u_matemissive + u_ambient.rgb * ambientbase;\n")
		for i := 0; i < 4; i++ {
			if id&(vsLight0Enable<<i) == 0 {
				continue
			}
			kind := (id >> (9 + 2*i)) & 0x3
			if kind == 0 {
				// directional. the position register doubles as the
				// direction
				fmt.Fprintf(&b, "  {\n    vec3 tolight%d = normalize(u_lightpos%d);\n    float att%d = 1.0;\n", i, i, i)
			} else {
				fmt.Fprintf(&b, "  {\n    vec3 tolight%d = u_lightpos%d - worldpos.xyz;\n", i, i)
				fmt.Fprintf(&b, "    float dist%d = length(tolight%d);\n", i, i)
				fmt.Fprintf(&b, "    tolight%d /= max(dist%d, 0.001);\n", i, i)
				fmt.Fprintf(&b, "    float att%d = clamp(1.0 / dot(u_lightatt%d, vec3(1.0, dist%d, dist%d*dist%d)), 0.0, 1.0);\n", i, i, i, i, i)
				if kind == 2 {
					fmt.Fprintf(&b, "    float spot%d = dot(normalize(u_lightdir%d), -tolight%d);\n", i, i, i)
					fmt.Fprintf(&b, "    att%d *= spot%d >= u_lightspot%d.y ? pow(max(spot%d, 0.0), u_lightspot%d.x) : 0.0;\n", i, i, i, i, i)
				}
			}
			fmt.Fprintf(&b, "    float diff%d = max(dot(tolight%d, worldnormal), 0.0);\n", i, i)
			fmt.Fprintf(&b, "    lit += att%d * (u_lightambient%d * ambientbase + u_lightdiffuse%d * diffusebase * diff%d);\n", i, i, i, i)
			fmt.Fprintf(&b, "    if (u_matspecular.a > 0.0 && diff%d > 0.0) {\n", i)
			fmt.Fprintf(&b, "      vec3 halfvec%d = normalize(tolight%d + vec3(0.0, 0.0, 1.0));\n", i, i)
			fmt.Fprintf(&b, "      lit += att%d * u_lightspecular%d * u_matspecular.rgb * pow(max(dot(halfvec%d, worldnormal), 0.0), u_matspecular.a);\n", i, i, i)
			b.WriteString("    }\n  }\n")
		}
		b.WriteString("  v_color = vec4(clamp(lit, 0.0, 1.0), alpha);\n")
	case color:
		b.WriteString("  v_color = a_color;\n")
	default:
		b.WriteString("  v_color = vec4(1.0);\n")
	}

	b.WriteString("}\n")
	return b.String()
}

func generateFragmentShader(id fragmentShaderID) string {
	var b strings.Builder

	b.WriteString("#version 150\n")
	b.WriteString("in vec4 v_color;\n")
	b.WriteString("out vec4 fragColor;\n")

	if id&fsClear != 0 {
		b.WriteString("void main() {\n  fragColor = v_color;\n}\n")
		return b.String()
	}

	texture := id&fsTexture != 0
	if texture {
		b.WriteString("in vec2 v_texcoord;\n")
		b.WriteString("uniform sampler2D u_tex;\n")
		b.WriteString("uniform vec3 u_texenv;\n")
	}
	if id&fsFog != 0 {
		b.WriteString("in float v_fogdepth;\n")
		b.WriteString("uniform vec2 u_fogcoef;\n")
		b.WriteString("uniform vec3 u_fogcolor;\n")
	}
	if id&fsAlphaTest != 0 {
		b.WriteString("uniform vec2 u_alpharef;\n")
	}

	b.WriteString("void main() {\n")
	b.WriteString("  vec4 c = v_color;\n")

	if texture {
		b.WriteString("  vec4 t = texture(u_tex, v_texcoord);\n")
		fn := (id >> 6) & 0x7
		alpha := id&fsTexAlpha != 0
		switch fn {
		case 0: // modulate
			if alpha {
				b.WriteString("  c = c * t;\n")
			} else {
				b.WriteString("  c = vec4(c.rgb * t.rgb, c.a);\n")
			}
		case 1: // decal
			if alpha {
				b.WriteString("  c = vec4(mix(c.rgb, t.rgb, t.a), c.a);\n")
			} else {
				b.WriteString("  c = vec4(t.rgb, c.a);\n")
			}
		case 2: // blend against the environment color
			if alpha {
				b.WriteString("  c = vec4(mix(c.rgb, u_texenv, t.rgb), c.a * t.a);\n")
			} else {
				b.WriteString("  c = vec4(mix(c.rgb, u_texenv, t.rgb), c.a);\n")
			}
		case 3: // replace
			if alpha {
				b.WriteString("  c = t;\n")
			} else {
				b.WriteString("  c = vec4(t.rgb, c.a);\n")
			}
		default: // add
			if alpha {
				b.WriteString("  c = vec4(c.rgb + t.rgb, c.a * t.a);\n")
			} else {
				b.WriteString("  c = vec4(c.rgb + t.rgb, c.a);\n")
			}
		}
		if id&fsColorDouble != 0 {
			b.WriteString("  c.rgb *= 2.0;\n")
		}
	}

	if id&fsAlphaTest != 0 {
		fn := (id >> 9) & 0x7
		// NEVER and ALWAYS are resolved here; the comparisons discard the
		// fragment when the test fails
		switch fn {
		case 0:
			b.WriteString("  discard;\n")
		case 1:
			// always passes
		case 2:
			b.WriteString("  if (c.a != u_alpharef.x) discard;\n")
		case 3:
			b.WriteString("  if (c.a == u_alpharef.x) discard;\n")
		case 4:
			b.WriteString("  if (c.a >= u_alpharef.x) discard;\n")
		case 5:
			b.WriteString("  if (c.a > u_alpharef.x) discard;\n")
		case 6:
			b.WriteString("  if (c.a <= u_alpharef.x) discard;\n")
		case 7:
			b.WriteString("  if (c.a < u_alpharef.x) discard;\n")
		}
	}

	if id&fsFog != 0 {
		b.WriteString("  float fog = clamp((u_fogcoef.x - v_fogdepth) * u_fogcoef.y + 1.0, 0.0, 1.0);\n")
		b.WriteString("  c.rgb = mix(u_fogcolor, c.rgb, fog);\n")
	}

	b.WriteString("  fragColor = c;\n")
	b.WriteString("}\n")
	return b.String()
}
