package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/model"
	"culinary-hub/internal/repo/persistent"
	"culinary-hub/internal/usecase"
	"culinary-hub/pkg/config"
	"culinary-hub/pkg/database"
	"culinary-hub/pkg/imageproc"
	"culinary-hub/pkg/logger"
	"culinary-hub/pkg/storage"

	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"
)

const seedPassword = "password123"

type seeder struct {
	log         *logger.Logger
	users       usecase.UserUseCase
	userRepo    persistent.UserRepository
	chefs       usecase.ChefUseCase
	courses     usecase.CourseUseCase
	recipes     usecase.RecipeUseCase
	reviews     usecase.ReviewUseCase
	posts       usecase.PostUseCase
	comments    usecase.CommentUseCase
	enrollments usecase.EnrollmentUseCase
	photo       []byte
}

func main() {
	imageURL := flag.String("image-url", "", "optional image to attach to seeded recipes")
	flag.Parse()

	log := logger.New()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg, log)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer database.Close(db)

	var existing int64
	if err := db.Model(&model.UserModel{}).Count(&existing).Error; err != nil {
		log.Error("Failed to inspect users: %v", err)
		os.Exit(1)
	}
	if existing > 0 {
		log.Info("Database already has %d users, skipping seed", existing)
		return
	}

	s, err := newSeeder(cfg, db, log)
	if err != nil {
		log.Error("Failed to prepare seeder: %v", err)
		os.Exit(1)
	}
	if *imageURL != "" {
		s.photo, err = fetchImage(*imageURL)
		if err != nil {
			log.Warn("Skipping recipe images: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := s.run(ctx); err != nil {
		log.Error("Failed to seed database: %v", err)
		os.Exit(1)
	}
	log.Info("Database seeded successfully!")
}

func newSeeder(cfg *config.Config, db *gorm.DB, log *logger.Logger) (*seeder, error) {
	store, err := storage.New(cfg)
	if err != nil {
		return nil, err
	}
	uploader := usecase.NewImageUploader(store, imageproc.Options{
		MaxWidth:  cfg.ImageMaxWidth,
		MaxHeight: cfg.ImageMaxHeight,
		Quality:   float32(cfg.ImageQuality),
	})

	userRepo := persistent.NewUserRepository(db)
	postRepo := persistent.NewPostRepository(db)
	commentRepo := persistent.NewCommentRepository(db)
	courseRepo := persistent.NewCourseRepository(db)
	reviewRepo := persistent.NewReviewRepository(db)
	recipeRepo := persistent.NewRecipeRepository(db)

	return &seeder{
		log:         log,
		users:       usecase.NewUserUseCase(userRepo, nil, uploader, log),
		userRepo:    userRepo,
		chefs:       usecase.NewChefUseCase(persistent.NewChefRepository(db), userRepo, reviewRepo, uploader, nil, log),
		courses:     usecase.NewCourseUseCase(courseRepo, reviewRepo, nil, uploader, log),
		recipes:     usecase.NewRecipeUseCase(recipeRepo, uploader, log),
		reviews:     usecase.NewReviewUseCase(reviewRepo, courseRepo, recipeRepo, nil, log),
		posts:       usecase.NewPostUseCase(postRepo, commentRepo, uploader, log),
		comments:    usecase.NewCommentUseCase(postRepo, commentRepo, log),
		enrollments: usecase.NewEnrollmentUseCase(persistent.NewEnrollmentRepository(db), userRepo, nil, log),
	}, nil
}

func fetchImage(url string) ([]byte, error) {
	resp, err := resty.New().SetTimeout(30 * time.Second).R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s returned status %d", url, resp.StatusCode())
	}
	if len(resp.Body()) == 0 {
		return nil, fmt.Errorf("%s returned an empty body", url)
	}
	return resp.Body(), nil
}

func (s *seeder) user(ctx context.Context, fullName, username string) (entity.Actor, error) {
	u, err := s.users.Create(ctx, usecase.CreateUserInput{
		FullName: fullName,
		Username: username,
		Email:    username + "@culinaryhub.test",
		Password: seedPassword,
	})
	if err != nil {
		return entity.Actor{}, fmt.Errorf("create user %s: %w", username, err)
	}
	s.log.Info("Created user: %s", username)
	return entity.Actor{UserID: u.ID, Role: u.Role}, nil
}

func (s *seeder) run(ctx context.Context) error {
	admin, err := s.user(ctx, "Site Admin", "admin")
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdateRole(ctx, admin.UserID, entity.RoleAdmin); err != nil {
		return err
	}
	admin.Role = entity.RoleAdmin

	chef, err := s.user(ctx, "Giulia Rossi", "giulia")
	if err != nil {
		return err
	}
	app, err := s.chefs.Apply(ctx, chef, entity.ChefProfile{
		SpecialtyCuisine:  "Italian",
		YearsOfExperience: 12,
		CertificationName: "Culinary Arts Diploma",
		Biography:         "Fresh pasta and regional Italian cooking.",
	})
	if err != nil {
		return err
	}
	if _, err := s.chefs.Approve(ctx, admin, app.ID, "Seeded"); err != nil {
		return err
	}
	chef.Role = entity.RoleChef

	students := make([]entity.Actor, 0, 3)
	for _, name := range []string{"alice", "bob", "chen"} {
		student, err := s.user(ctx, "Student "+name, name)
		if err != nil {
			return err
		}
		students = append(students, student)
	}

	if err := s.seedCourse(ctx, chef, students); err != nil {
		return err
	}
	if err := s.seedRecipes(ctx, chef, students); err != nil {
		return err
	}
	return s.seedPosts(ctx, students)
}

func (s *seeder) seedCourse(ctx context.Context, chef entity.Actor, students []entity.Actor) error {
	course, err := s.courses.Create(ctx, chef, usecase.CourseInput{
		CourseName:    "Fresh Pasta Fundamentals",
		Ingredients:   "00 flour, eggs, semolina, salt",
		Difficulty:    "Beginner",
		EstimatedTime: "3 hours",
		Description:   "Make, shape and cook fresh egg pasta by hand.",
	})
	if err != nil {
		return err
	}

	sections := []usecase.SectionInput{
		{SectionTitle: "The dough", ContentType: entity.ContentText, Content: "100 g flour per egg, knead for ten minutes.", SectionOrder: 1},
		{SectionTitle: "Rolling", ContentType: entity.ContentVideo, Content: "https://videos.culinaryhub.test/rolling.mp4", SectionOrder: 2},
		{SectionTitle: "Shapes", ContentType: entity.ContentText, Content: "Tagliatelle, farfalle and orecchiette.", SectionOrder: 3},
	}
	for _, section := range sections {
		if _, err := s.courses.CreateSection(ctx, chef, course.ID, section); err != nil {
			return err
		}
	}

	if _, err := s.courses.CreateQuestion(ctx, chef, course.ID, usecase.QuestionInput{
		Question:      "How long should pasta dough rest?",
		OptionA:       "5 minutes",
		OptionB:       "30 minutes",
		OptionC:       "4 hours",
		OptionD:       "Overnight",
		CorrectAnswer: "B",
		QuestionOrder: 1,
	}); err != nil {
		return err
	}

	for i, student := range students {
		if _, err := s.enrollments.Enroll(ctx, student, course.ID); err != nil {
			return err
		}
		progress := entity.Progress(int64(i+1) * 35)
		if progress > entity.ProgressComplete {
			progress = entity.ProgressComplete
		}
		if _, err := s.enrollments.UpdateProgress(ctx, student, course.ID, progress); err != nil {
			return err
		}
		if _, err := s.reviews.CreateCourseReview(ctx, student, course.ID, 4+i%2, "Clear and practical."); err != nil {
			return err
		}
	}
	s.log.Info("Created course %q with %d sections", course.CourseName, len(sections))
	return nil
}

func (s *seeder) seedRecipes(ctx context.Context, chef entity.Actor, students []entity.Actor) error {
	inputs := []usecase.RecipeInput{
		{
			RecipeName:      "Spaghetti alla Carbonara",
			Cuisine:         "Italian",
			IngredientsList: []string{"spaghetti", "guanciale", "eggs", "pecorino romano", "black pepper"},
			StepsList:       []string{"Crisp the guanciale", "Whisk eggs with cheese", "Toss pasta off the heat"},
		},
		{
			RecipeName:  "Risotto alla Milanese",
			Cuisine:     "Italian",
			Ingredients: "carnaroli rice, saffron, stock, butter, parmigiano",
			Steps:       "Toast the rice\nAdd stock ladle by ladle\nFinish with butter and cheese",
		},
	}

	for _, input := range inputs {
		recipe, err := s.recipes.Create(ctx, chef, input)
		if err != nil {
			return err
		}
		if s.photo != nil {
			if _, err := s.recipes.UploadImage(ctx, chef, recipe.ID, bytes.NewReader(s.photo)); err != nil {
				s.log.Warn("Failed to attach image to recipe %d: %v", recipe.ID, err)
			}
		}
		for i, student := range students {
			if _, err := s.reviews.CreateRecipeReview(ctx, student, recipe.ID, 3+i%3, "Made it twice already."); err != nil {
				return err
			}
		}
		s.log.Info("Created recipe %q", recipe.RecipeName)
	}
	return nil
}

func (s *seeder) seedPosts(ctx context.Context, students []entity.Actor) error {
	for i, author := range students {
		post, err := s.posts.Create(ctx, author, fmt.Sprintf("Kitchen notes #%d", i+1), "What I cooked this week.")
		if err != nil {
			return err
		}
		for _, reader := range students {
			if reader.UserID == author.UserID {
				continue
			}
			if err := s.posts.RecordView(ctx, reader, post.ID); err != nil {
				return err
			}
			if err := s.posts.Like(ctx, reader, post.ID); err != nil {
				return err
			}
			comment, err := s.comments.Create(ctx, reader, post.ID, "Looks delicious!", nil)
			if err != nil {
				return err
			}
			if _, err := s.comments.Create(ctx, author, post.ID, "Thank you!", &comment.ID); err != nil {
				return err
			}
		}
	}
	s.log.Info("Created %d posts", len(students))
	return nil
}
