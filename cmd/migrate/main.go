package main

import (
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mkowalski/puck-picks/internal/models"
	"github.com/mkowalski/puck-picks/pkg/config"
	"github.com/mkowalski/puck-picks/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := seedData(db); err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.Info("Seed data inserted successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	return db.AutoMigrate(
		&models.Player{},
		&models.PlayerSeasonStat{},
		&models.TeamMember{},
	)
}

func dropTables(db *database.DB) error {
	return db.Migrator().DropTable(
		&models.TeamMember{},
		&models.PlayerSeasonStat{},
		&models.Player{},
	)
}

func seedData(db *database.DB) error {
	players := []models.Player{
		{PlayerID: 8478402, Name: "Connor McDavid", Position: "C"},
		{PlayerID: 8477934, Name: "Leon Draisaitl", Position: "C"},
		{PlayerID: 8479318, Name: "Auston Matthews", Position: "C"},
		{PlayerID: 8477492, Name: "Nathan MacKinnon", Position: "C"},
		{PlayerID: 8474564, Name: "Erik Karlsson", Position: "D"},
		{PlayerID: 8480069, Name: "Cale Makar", Position: "D"},
		{PlayerID: 8478550, Name: "Artemi Panarin", Position: "L"},
		{PlayerID: 8479339, Name: "Matthew Tkachuk", Position: "L"},
		{PlayerID: 8479400, Name: "Mikko Rantanen", Position: "R"},
		{PlayerID: 8476453, Name: "Nikita Kucherov", Position: "R"},
	}
	if err := db.Create(&players).Error; err != nil {
		return err
	}

	stats := []models.PlayerSeasonStat{
		{PlayerID: 8478402, SeasonID: 20222023, PlayerStats: models.PlayerStats{GamesPlayed: 82, Goals: 64, Assists: 89, Points: 153, PointsPerGame: 1.87, Shots: 352, ShootingPercent: 0.1818, TimeOnIcePerGame: 1337, ShortHandedGoals: 4, GameWinningGoals: 11}},
		{PlayerID: 8478402, SeasonID: 20212022, PlayerStats: models.PlayerStats{GamesPlayed: 80, Goals: 44, Assists: 79, Points: 123, PointsPerGame: 1.54, Shots: 314, ShootingPercent: 0.1401, TimeOnIcePerGame: 1322, ShortHandedGoals: 2, GameWinningGoals: 8}},
		{PlayerID: 8477934, SeasonID: 20222023, PlayerStats: models.PlayerStats{GamesPlayed: 80, Goals: 52, Assists: 76, Points: 128, PointsPerGame: 1.60, Shots: 265, ShootingPercent: 0.1962, TimeOnIcePerGame: 1316, ShortHandedGoals: 1, GameWinningGoals: 10}},
		{PlayerID: 8479318, SeasonID: 20222023, PlayerStats: models.PlayerStats{GamesPlayed: 74, Goals: 40, Assists: 45, Points: 85, PointsPerGame: 1.15, Shots: 329, ShootingPercent: 0.1216, TimeOnIcePerGame: 1237, ShortHandedGoals: 0, GameWinningGoals: 7}},
		{PlayerID: 8477492, SeasonID: 20222023, PlayerStats: models.PlayerStats{GamesPlayed: 71, Goals: 42, Assists: 69, Points: 111, PointsPerGame: 1.56, Shots: 352, ShootingPercent: 0.1193, TimeOnIcePerGame: 1344, ShortHandedGoals: 0, GameWinningGoals: 8}},
		{PlayerID: 8474564, SeasonID: 20222023, PlayerStats: models.PlayerStats{GamesPlayed: 82, Goals: 25, Assists: 76, Points: 101, PointsPerGame: 1.23, Shots: 235, ShootingPercent: 0.1064, TimeOnIcePerGame: 1538, ShortHandedGoals: 0, GameWinningGoals: 3}},
		{PlayerID: 8480069, SeasonID: 20222023, PlayerStats: models.PlayerStats{GamesPlayed: 60, Goals: 17, Assists: 49, Points: 66, PointsPerGame: 1.10, Shots: 195, ShootingPercent: 0.0872, TimeOnIcePerGame: 1550, ShortHandedGoals: 1, GameWinningGoals: 5}},
		{PlayerID: 8478550, SeasonID: 20222023, PlayerStats: models.PlayerStats{GamesPlayed: 82, Goals: 29, Assists: 63, Points: 92, PointsPerGame: 1.12, Shots: 214, ShootingPercent: 0.1355, TimeOnIcePerGame: 1189, ShortHandedGoals: 0, GameWinningGoals: 4}},
		{PlayerID: 8479339, SeasonID: 20222023, PlayerStats: models.PlayerStats{GamesPlayed: 79, Goals: 40, Assists: 69, Points: 109, PointsPerGame: 1.38, Shots: 265, ShootingPercent: 0.1509, TimeOnIcePerGame: 1205, ShortHandedGoals: 0, GameWinningGoals: 9}},
		{PlayerID: 8479400, SeasonID: 20222023, PlayerStats: models.PlayerStats{GamesPlayed: 82, Goals: 55, Assists: 50, Points: 105, PointsPerGame: 1.28, Shots: 301, ShootingPercent: 0.1827, TimeOnIcePerGame: 1270, ShortHandedGoals: 1, GameWinningGoals: 9}},
		{PlayerID: 8476453, SeasonID: 20222023, PlayerStats: models.PlayerStats{GamesPlayed: 82, Goals: 30, Assists: 83, Points: 113, PointsPerGame: 1.38, Shots: 250, ShootingPercent: 0.1200, TimeOnIcePerGame: 1186, ShortHandedGoals: 0, GameWinningGoals: 5}},
	}
	return db.Create(&stats).Error
}
