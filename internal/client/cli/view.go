package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/userdir/internal/client/directory"
	"github.com/dmitrijs2005/userdir/internal/client/directoryview"
)

func renderPage(w io.Writer, s directoryview.Snapshot) {
	switch s.State {
	case directoryview.StateUnauthorized:
		fmt.Fprintln(w, "Not logged in.")
		return
	case directoryview.StateLoadingPage:
		fmt.Fprintf(w, "Loading page %d...\n", s.PageIndex)
		return
	case directoryview.StateFetchFailed:
		fmt.Fprintf(w, "Could not load page %d: %v\n", s.PageIndex, s.Err)
		fmt.Fprintln(w, "Type 'reload' to try again.")
		if len(s.Records) == 0 {
			return
		}
		fmt.Fprintln(w, "Previous results:")
	default:
		fmt.Fprintf(w, "Page %d\n", s.PageIndex)
	}

	if len(s.Records) == 0 {
		fmt.Fprintln(w, "No people on this page.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tNAME\tEMAIL\tAGE\tUNIVERSITY")
		for i, p := range s.Records {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", i+1, p.FullName(), p.Email, p.Age, p.University)
		}
		tw.Flush()
	}

	if s.LastPage {
		fmt.Fprintln(w, "End of list.")
	}
	if s.Selected != nil {
		renderPerson(w, *s.Selected)
	}
}

func renderPerson(w io.Writer, p directory.Person) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", p.FullName())
	fmt.Fprintf(tw, "Age:\t%d\n", p.Age)
	fmt.Fprintf(tw, "Gender:\t%s\n", p.Gender)
	fmt.Fprintf(tw, "Email:\t%s\n", p.Email)
	fmt.Fprintf(tw, "Phone:\t%s\n", p.Phone)
	fmt.Fprintf(tw, "Blood group:\t%s\n", p.BloodGroup)
	fmt.Fprintf(tw, "University:\t%s\n", p.University)
	fmt.Fprintf(tw, "Image:\t%s\n", p.Image)
	tw.Flush()
}
