package seeders

// Тип "CPU" обязателен: только для него ведутся технические детали.
var deviceTypesData = []string{
	"CPU",
	"Monitor",
	"Laptop",
	"Printer",
	"Scanner",
	"Projector",
	"UPS",
	"Switch",
}

var buildingsData = []string{
	"Главный корпус",
	"Корпус начальной школы",
	"Спортивный зал",
	"Библиотека",
}
