package view

type LoginForm struct {
	Name     string
	ReturnTo string
}
