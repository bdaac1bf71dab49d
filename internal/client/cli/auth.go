package cli

import (
	"context"
	"fmt"
	"time"
)

func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}

	res, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", displayName(res.User.Name, res.User.Email))
	return nil
}

// Register prompts for name, email and a confirmed password. An empty name
// defaults to the email's local part.
func (a *App) Register(ctx context.Context, _ []string) error {
	name, err := getSimpleText(a.reader, "Enter name (optional)", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword(a.reader, "Repeat password", a.out)
	if err != nil {
		return err
	}

	res, err := a.auth.Register(ctx, name, email, password, confirm)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", displayName(res.User.Name, res.User.Email))
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	a.auth.Logout(ctx)
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *App) Google(_ context.Context, _ []string) error {
	fmt.Fprintln(a.out, "Open this address in your browser to sign in with Google:")
	fmt.Fprintln(a.out, a.auth.GoogleLoginURL())
	fmt.Fprintln(a.out, "Then paste the address you were sent back to with: callback <url>")
	return nil
}

// Callback completes a browser sign-in from the address the browser ended
// up on. Password reset links are accepted too.
func (a *App) Callback(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("callback <url>")
	}

	user, clean, err := a.auth.HandleOAuthCallback(ctx, args[0])
	if err != nil {
		return err
	}
	if user != nil {
		fmt.Fprintf(a.out, "Signed in as %s.\n", displayName(user.Name, user.Email))
		return nil
	}

	if _, pending, err := a.auth.HandleResetCallback(ctx, clean); err != nil {
		return err
	} else if pending {
		return a.completeReset(ctx)
	}

	fmt.Fprintln(a.out, "Nothing to do for this address.")
	return nil
}

func (a *App) Forgot(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter your account email", a.out)
	if err != nil {
		return err
	}
	msg, err := a.auth.ForgotPassword(ctx, email)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	fmt.Fprintln(a.out, "Paste the link from the email with: reset <url>")
	return nil
}

// Reset enters reset mode from the emailed link (or resumes a pending reset
// when called without arguments) and asks for the new password.
func (a *App) Reset(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return usageError("reset [url]")
	}
	if len(args) == 1 {
		_, pending, err := a.auth.HandleResetCallback(ctx, args[0])
		if err != nil {
			return err
		}
		if !pending {
			return fmt.Errorf("the link has no reset token")
		}
	}
	return a.completeReset(ctx)
}

func (a *App) completeReset(ctx context.Context) error {
	email, ok := a.auth.PendingReset(ctx)
	if !ok {
		return fmt.Errorf("nothing to reset, use forgot first")
	}
	fmt.Fprintf(a.out, "Choose a new password for %s (leave empty to cancel).\n", email)

	password, err := getPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}
	if password == "" {
		a.auth.AbandonReset(ctx)
		fmt.Fprintln(a.out, "Password reset cancelled.")
		return nil
	}
	confirm, err := getPassword(a.reader, "Repeat new password", a.out)
	if err != nil {
		return err
	}

	msg, err := a.auth.ResetPassword(ctx, password, confirm)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	u := a.auth.CurrentUser(ctx)
	if !a.auth.IsLoggedIn(ctx) || u == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> id=%s\n", u.Name, u.Email, u.ID)

	if exp, ok := a.creds.AccessTokenExpiry(ctx); ok {
		fmt.Fprintf(a.out, "Session token expires %s\n", exp.Local().Format(time.RFC1123))
	} else {
		fmt.Fprintln(a.out, "Session token expiry unknown.")
	}
	return nil
}
