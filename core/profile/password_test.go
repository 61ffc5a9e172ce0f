package profile

import "testing"

func Test_checkPassword(t *testing.T) {
	tests := []struct {
		name  string
		pwd   string
		attrs []string
		want  string
	}{
		{name: "too short", pwd: "Ab1!", want: pwdMinLenText},
		{name: "whitespace", pwd: "Abcd 123!", want: pwdNoSpaceText},
		{name: "all numeric", pwd: "1234567890", want: pwdNotAllNumText},
		{name: "no special", pwd: "Abcd1234", want: pwdComplexityText},
		{name: "no upper", pwd: "abcd123!", want: pwdComplexityText},
		{name: "similar to email", pwd: "Teacher@school1", attrs: []string{"Teacher", "teacher@school.com"}, want: pwdAttrSimText},
		{name: "valid", pwd: "Gr8-Lesson!Notes", attrs: []string{"Mr. John Doe", "john@school.com"}},
		{name: "valid without attrs", pwd: "Gr8-Lesson!Notes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkPassword(tt.pwd, tt.attrs...); got != tt.want {
				t.Errorf("checkPassword() = %q, want %q", got, tt.want)
			}
		})
	}
}
