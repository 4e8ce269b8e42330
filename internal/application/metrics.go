package application

import "expvar"

var metrics = struct {
	Registrations *expvar.Int
	Logins        *expvar.Int
	LoginFailures *expvar.Int
	TasksCreated  *expvar.Int
}{
	Registrations: expvar.NewInt("registrations"),
	Logins:        expvar.NewInt("logins"),
	LoginFailures: expvar.NewInt("login_failures"),
	TasksCreated:  expvar.NewInt("tasks_created"),
}
