package scenario

import (
	"log/slog"

	"github.com/brianly1003/notifyhub/internal/domain"
	"github.com/brianly1003/notifyhub/internal/domain/ports"
	"github.com/brianly1003/notifyhub/internal/listeners"
	"github.com/brianly1003/notifyhub/internal/registry"
	"github.com/brianly1003/notifyhub/internal/subjects"
)

func init() {
	register(Scenario{Name: "blog", Description: "Blog posts delivered by email, SMS and push", Run: runBlog})
	register(Scenario{Name: "chat", Description: "Chat room with text, emoticon and themed users", Run: runChat})
	register(Scenario{Name: "stock", Description: "Stock price with current and percentage change displays", Run: runStock})
	register(Scenario{Name: "traffic", Description: "Traffic conditions fanned out to control, reporting and emergency units", Run: runTraffic})
	register(Scenario{Name: "weather", Description: "Weather station with conditions, statistics and forecast displays", Run: runWeather})
	register(Scenario{Name: "order", Description: "Order status updates sent to customers", Run: runOrder})
}

type registerer[T any] interface {
	Register(listener ports.Listener[T]) registry.Handle
}

func attachAudit[T any](env Env, name string, subject registerer[T]) {
	if env.Audit == nil {
		return
	}
	subject.Register(listeners.NewLogListener[T](name, env.Audit, slog.LevelInfo))
}

// sequence runs steps in order and stops at the first error.
func sequence(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func runBlog(env Env) error {
	blog := subjects.NewBlog(env.RegistryOptions()...)

	email := listeners.NewEmailSubscriber("subscriber@example.com", env.Out)
	blog.Register(email)
	blog.Register(listeners.NewSMSSubscriber("+123456789", env.Out))
	blog.Register(listeners.NewPushSubscriber("device123", env.Out))
	attachAudit[string](env, "blog-audit", blog)

	return sequence(
		func() error { return blog.AddPost("Observer Pattern in Go") },
		func() error { return blog.AddPost("Understanding Go Interfaces") },
		func() error { blog.RemoveListener(email); return nil },
		func() error { return blog.AddPost("Advanced Go Programming") },
	)
}

func runChat(env Env) error {
	room := subjects.NewChatRoom(env.RegistryOptions()...)

	alice := room.Register(listeners.NewTextUser("Alice", env.Out))
	room.Register(listeners.NewEmoticonUser("Bob", env.Out))
	room.Register(listeners.NewThemedUser("Charlie", "Dark", env.Out))
	attachAudit[string](env, "chat-audit", room)

	return sequence(
		func() error { return room.PostMessage("Hello, everyone! :)") },
		func() error { return room.PostMessage("How's it going? :(") },
		func() error { room.Remove(alice); return nil },
		func() error { return room.PostMessage("Alice has left the chat.") },
	)
}

func runStock(env Env) error {
	stock := subjects.NewStockData(env.RegistryOptions()...)

	current := stock.Register(listeners.NewCurrentPriceDisplay(env.Out))
	stock.Register(listeners.NewPercentageChangeDisplay(env.Out))
	attachAudit[float64](env, "stock-audit", stock)

	return sequence(
		func() error { return stock.SetPrice(100.0) },
		func() error { return stock.SetPrice(105.0) },
		func() error { return stock.SetPrice(110.0) },
		func() error { stock.Remove(current); return nil },
		func() error { return stock.SetPrice(120.0) },
	)
}

func runTraffic(env Env) error {
	traffic := subjects.NewTrafficData(env.RegistryOptions()...)

	traffic.Register(listeners.NewTrafficLightController("Controller A", env.Out))
	reports := traffic.Register(listeners.NewReportGenerator(env.Out))
	traffic.Register(listeners.NewEmergencyResponseUnit("Unit 1", env.Out))
	attachAudit[string](env, "traffic-audit", traffic)

	return sequence(
		func() error { return traffic.SetCondition("Heavy Traffic") },
		func() error { return traffic.SetCondition("Accident on Highway") },
		func() error { traffic.Remove(reports); return nil },
		func() error { return traffic.SetCondition("Road Cleared") },
	)
}

func runWeather(env Env) error {
	weather := subjects.NewWeatherData(env.RegistryOptions()...)

	current := weather.Register(listeners.NewCurrentConditionsDisplay(env.Out))
	weather.Register(listeners.NewStatisticsDisplay(env.Out))
	weather.Register(listeners.NewForecastDisplay(env.Out))
	attachAudit[domain.Measurement](env, "weather-audit", weather)

	return sequence(
		func() error { return weather.SetMeasurements(80.0, 65.0, 30.4) },
		func() error { return weather.SetMeasurements(82.0, 70.0, 29.2) },
		func() error { return weather.SetMeasurements(78.0, 90.0, 29.2) },
		func() error { weather.Remove(current); return nil },
		func() error { return weather.SetMeasurements(85.0, 75.0, 28.2) },
	)
}

func runOrder(env Env) error {
	orders := subjects.NewOrderSystem(env.RegistryOptions()...)

	orders.Register(listeners.NewCustomer("Alice", env.Out))
	bob := listeners.NewCustomer("Bob", env.Out)
	orders.Register(bob)
	attachAudit[string](env, "order-audit", orders)

	return sequence(
		func() error { return orders.UpdateStatus("Processing") },
		func() error { return orders.UpdateStatus("Shipped") },
		func() error { orders.RemoveListener(bob); return nil },
		func() error { return orders.UpdateStatus("Delivered") },
	)
}
