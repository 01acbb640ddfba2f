package tui

import "deskfolio/internal/catalog"

type launcherAction int

const (
	// actionFolder opens (or toggles) a Finder window on a folder.
	actionFolder launcherAction = iota
	// actionURL opens an external link.
	actionURL
	// actionNotice shows a status message; the app is decorative.
	actionNotice
)

// launcher is anything the user can click to open a window: dock items, desktop
// icons, menu entries. Folder launchers own a stable window id equal to their id.
type launcher struct {
	ID     string
	Label  string
	Icon   string
	Action launcherAction
	Folder string
	// Select is an item to select after the window opens.
	Select string
	URL    string
}

var dockGroups = [][]launcher{
	{
		{ID: "finder", Label: "Finder", Icon: "🗂", Action: actionFolder, Folder: catalog.FolderAbout},
		{ID: "launchpad", Label: "Launchpad", Icon: "🚀", Action: actionNotice},
		{ID: "appstore", Label: "App Store", Icon: "🛍", Action: actionNotice},
		{ID: "projects", Label: "Projects", Icon: "💼", Action: actionFolder, Folder: catalog.FolderProjects},
		{ID: "experience", Label: "Experience", Icon: "🏢", Action: actionFolder, Folder: catalog.FolderExperience},
		{ID: "education", Label: "Education", Icon: "🎓", Action: actionFolder, Folder: catalog.FolderEducation},
		{ID: "certifications", Label: "Certifications", Icon: "🏅", Action: actionFolder, Folder: catalog.FolderCertifications},
		{ID: "events", Label: "Events", Icon: "🎤", Action: actionFolder, Folder: catalog.FolderEvents},
		{ID: "calendar", Label: "Calendar", Icon: "📅", Action: actionNotice},
	},
	{
		{ID: "github", Label: "GitHub", Icon: "🐙", Action: actionURL, URL: "https://github.com/koushikpr"},
		{ID: "linkedin", Label: "LinkedIn", Icon: "🔗", Action: actionURL, URL: "https://linkedin.com/in/koushikpr"},
		{ID: "mail", Label: "Mail", Icon: "✉", Action: actionURL, URL: "mailto:kravikum1@stevens.edu"},
		{ID: "contacts", Label: "Contacts", Icon: "👤", Action: actionFolder, Folder: catalog.FolderAbout, Select: "contact-info"},
	},
	{
		{ID: "folder", Label: "Portfolio Files", Icon: "📁", Action: actionFolder, Folder: catalog.FolderAbout},
		{ID: "trash", Label: "Trash", Icon: "🗑", Action: actionNotice},
	},
}

var desktopIcons = []launcher{
	{ID: "about", Label: "About Me", Icon: "🧑", Action: actionFolder, Folder: catalog.FolderAbout},
	{ID: "projects", Label: "Projects", Icon: "💼", Action: actionFolder, Folder: catalog.FolderProjects},
	{ID: "experience", Label: "Experience", Icon: "🏢", Action: actionFolder, Folder: catalog.FolderExperience},
	{ID: "education", Label: "Education", Icon: "🎓", Action: actionFolder, Folder: catalog.FolderEducation},
	{ID: "certifications", Label: "Certifications", Icon: "🏅", Action: actionFolder, Folder: catalog.FolderCertifications},
	{ID: "events", Label: "Events", Icon: "🎤", Action: actionFolder, Folder: catalog.FolderEvents},
	{ID: "resume", Label: "Resume.pdf", Icon: "📄", Action: actionFolder, Folder: catalog.FolderAbout, Select: "resume"},
	{ID: "contact", Label: "Contact", Icon: "📇", Action: actionFolder, Folder: catalog.FolderAbout, Select: "contact-info"},
}

// menuLaunchers are the menu bar entries after the brand.
var menuLaunchers = []launcher{
	{ID: "portfolio", Label: "Portfolio", Action: actionFolder, Folder: catalog.FolderAbout},
	{ID: "about", Label: "About", Action: actionFolder, Folder: catalog.FolderAbout},
	{ID: "projects", Label: "Projects", Action: actionFolder, Folder: catalog.FolderProjects},
	{ID: "experience", Label: "Experience", Action: actionFolder, Folder: catalog.FolderExperience},
	{ID: "contact", Label: "Contact", Action: actionFolder, Folder: catalog.FolderAbout, Select: "contact-info"},
}

// folderTitle is the display name of a folder, used for windows opened by a jump.
func folderTitle(cat *catalog.Catalog, folderID string) string {
	if f, ok := cat.Folder(folderID); ok {
		return f.Name
	}
	return folderID
}

// lookupLauncher finds a launcher by id across the dock, desktop and menu.
func lookupLauncher(id string) (launcher, bool) {
	for _, g := range dockGroups {
		for _, l := range g {
			if l.ID == id {
				return l, true
			}
		}
	}
	for _, l := range desktopIcons {
		if l.ID == id {
			return l, true
		}
	}
	for _, l := range menuLaunchers {
		if l.ID == id {
			return l, true
		}
	}
	return launcher{}, false
}

// LauncherIDs lists every launcher id in dock, desktop, menu order without duplicates.
func LauncherIDs() []string {
	seen := map[string]bool{}
	var out []string
	add := func(l launcher) {
		if !seen[l.ID] {
			seen[l.ID] = true
			out = append(out, l.ID)
		}
	}
	for _, g := range dockGroups {
		for _, l := range g {
			add(l)
		}
	}
	for _, l := range desktopIcons {
		add(l)
	}
	for _, l := range menuLaunchers {
		add(l)
	}
	return out
}

// IsLauncher reports whether id names a launcher.
func IsLauncher(id string) bool {
	_, ok := lookupLauncher(id)
	return ok
}

// visibleDock drops non-folder launchers on mobile.
func visibleDock(mobile bool) [][]launcher {
	if !mobile {
		return dockGroups
	}
	var out [][]launcher
	for _, g := range dockGroups {
		var keep []launcher
		for _, l := range g {
			if l.Action == actionFolder {
				keep = append(keep, l)
			}
		}
		if len(keep) > 0 {
			out = append(out, keep)
		}
	}
	return out
}
