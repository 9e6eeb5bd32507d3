// Package vanish provides a Go client for Vanish, a temporary email
// service with a REST API.
//
// The client generates disposable addresses, lists and fetches the emails
// they receive, downloads attachments and deletes mail. It can also poll
// a mailbox until a new email arrives, which is the usual way to wait for
// a signup or password-reset message in end-to-end tests.
//
// Basic usage:
//
//	client, err := vanish.New(vanish.WithAPIKey(os.Getenv("VANISH_API_KEY")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Create a disposable address
//	address, err := client.GenerateEmail(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Wait up to two minutes for an email
//	email, err := client.PollForNewEmail(ctx, address,
//	    vanish.WithPollTimeout(2*time.Minute))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if email == nil {
//	    log.Fatal("no email received")
//	}
//
//	fmt.Println("Subject:", email.Subject)
package vanish
