package main

import "github.com/Marakke/activity-app/cmd/activity"

func main() {
	activity.Execute()
}
