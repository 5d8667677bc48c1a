package ui

import (
	"context"
	"strconv"

	"vehicledb/pkg/apiclient"
	"vehicledb/pkg/authstore"
	"vehicledb/pkg/guard"
)

func registerScreens(r *Router) {
	r.Public("home", HomePath, homeScreen)
	r.Public("login", LoginPath, loginScreen)
	r.Public("register", "/register", registerScreen)
	r.Public("logout", "/logout", logoutScreen)
	r.Protected("vehicles", "/vehicles", vehiclesScreen)
	r.Protected("vehicle-create", "/vehicles/new", createVehicleScreen)
	r.Protected("vehicle-delete", "/vehicles/{vehicleId}/delete", deleteVehicleScreen)
}

func homeScreen(ctx context.Context, a *App, rt *Route) (string, error) {
	switch a.Auth.State() {
	case authstore.Authenticated:
		sess, _ := a.Auth.Session()
		a.Printf("logged in as %s\n", sess.EmailAddress)
		a.Printf("  /vehicles  /vehicles/new  /logout\n")
	case authstore.Anonymous:
		a.Printf("  /login  /register\n")
	default:
		a.Printf("checking session...\n")
	}
	return "", nil
}

func readCredentials(a *App) (string, string, bool, error) {
	email, err := a.Prompt("Email Address:")
	if err != nil {
		return "", "", false, err
	}
	password, err := a.Prompt("Password:")
	if err != nil {
		return "", "", false, err
	}
	if email == "" || password == "" {
		a.Printf("email address and password are required\n")
		return "", "", false, nil
	}
	return email, password, true, nil
}

func loginScreen(ctx context.Context, a *App, rt *Route) (string, error) {
	a.Printf("Login\n")
	email, password, ok, err := readCredentials(a)
	if err != nil || !ok {
		return "", err
	}

	if err := a.Auth.Login(ctx, email, password); err != nil {
		a.ShowError(err)
		return "", nil
	}
	return guard.NextLocation(rt.Query, HomePath), nil
}

func registerScreen(ctx context.Context, a *App, rt *Route) (string, error) {
	a.Printf("Register\n")
	email, password, ok, err := readCredentials(a)
	if err != nil || !ok {
		return "", err
	}

	if err := a.Auth.Register(ctx, email, password); err != nil {
		a.ShowError(err)
		return "", nil
	}
	return HomePath, nil
}

func logoutScreen(ctx context.Context, a *App, rt *Route) (string, error) {
	if err := a.Auth.Logout(ctx); err != nil {
		a.ShowError(err)
		return "", nil
	}
	a.Printf("logged out\n")
	return LoginPath, nil
}

func vehiclesScreen(ctx context.Context, a *App, rt *Route) (string, error) {
	vehicles, err := a.Vehicles.ListVehicles(ctx)
	if err != nil {
		a.ShowError(err)
		return "", nil
	}
	if len(vehicles) == 0 {
		a.Printf("no vehicles\n")
	}
	for _, v := range vehicles {
		a.Printf("%s  %d %s %s\n", v.ID, v.Year, v.Make, v.Model)
	}
	return "", nil
}

func createVehicleScreen(ctx context.Context, a *App, rt *Route) (string, error) {
	a.Printf("Create A Vehicle\n")
	yearText, err := a.Prompt("Year:")
	if err != nil {
		return "", err
	}
	year, convErr := strconv.Atoi(yearText)
	if convErr != nil {
		a.Printf("error: year must be a number\n")
		return "", nil
	}
	vehicleMake, err := a.Prompt("Make:")
	if err != nil {
		return "", err
	}
	model, err := a.Prompt("Model:")
	if err != nil {
		return "", err
	}

	v, err := a.Vehicles.CreateVehicle(ctx, apiclient.NewVehicle{Year: year, Make: vehicleMake, Model: model})
	if err != nil {
		a.ShowError(err)
		return "", nil
	}
	a.Printf("created %s\n", v.ID)
	return "/vehicles", nil
}

func deleteVehicleScreen(ctx context.Context, a *App, rt *Route) (string, error) {
	if err := a.Vehicles.DeleteVehicle(ctx, rt.Vars["vehicleId"]); err != nil {
		a.ShowError(err)
		return "", nil
	}
	a.Printf("deleted %s\n", rt.Vars["vehicleId"])
	return "/vehicles", nil
}
